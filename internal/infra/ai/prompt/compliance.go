package prompt

import "fmt"

// GetSystemPrompt sets the role for chat-style providers that take a separate system message.
func GetSystemPrompt() string {
	return `You are a legal and compliance analyst for early-stage startups. You read internal documentation and report the state of each compliance item. You answer with raw JSON only (no markdown, no commentary, no code fences).`
}

// ComplianceExtraction builds the extraction prompt around normalized page text.
func ComplianceExtraction(text string) string {
	return fmt.Sprintf(`Analyze the following document and extract every legal or compliance item it mentions together with its current status.

Requirements:
- Return only a JSON array, no markdown.
- Each element is an object: {"name": "<item name>", "status": "<COMPLETE|IN_PROGRESS|PENDING>", "checked": <true only when status is COMPLETE>}.
- Keep items in the order they appear in the document.
- If the document mentions no compliance items, return [].

Document:
%s`, text)
}
