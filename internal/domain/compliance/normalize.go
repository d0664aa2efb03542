package compliance

import (
	"regexp"
	"strings"
)

var (
	cdataPattern      = regexp.MustCompile(`<!\[CDATA\[([\s\S]*?)\]\]>`)
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)

	// single pass, produced text is never decoded again
	entityDecoder = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Normalize reduces a storage-format page body to plain text: first CDATA
// block only, entities decoded once, tags removed, whitespace collapsed.
func Normalize(raw string) string {
	text := raw
	if m := cdataPattern.FindStringSubmatch(raw); m != nil {
		text = m[1]
	}

	text = entityDecoder.Replace(text)
	text = tagPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
