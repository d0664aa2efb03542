package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/dhnext/launchpad/internal/domain/compliance"
)

var (
	errNotJSON    = errors.New("response is not valid JSON")
	errNotAnArray = errors.New("response is not a JSON array")

	fencePattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")
)

// unwrapFence returns the body of the first fenced code block, or the trimmed reply when there is none
func unwrapFence(reply string) string {
	if m := fencePattern.FindStringSubmatch(reply); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(reply)
}

// parseItems decodes a model reply into items, coercing missing or unknown fields
func parseItems(reply string) ([]compliance.Item, error) {
	var raw any
	if err := json.Unmarshal([]byte(unwrapFence(reply)), &raw); err != nil {
		return nil, errNotJSON
	}

	elems, ok := raw.([]any)
	if !ok {
		return nil, errNotAnArray
	}

	items := make([]compliance.Item, 0, len(elems))
	for _, e := range elems {
		items = append(items, coerceItem(e))
	}
	return items, nil
}

func coerceItem(elem any) compliance.Item {
	obj, _ := elem.(map[string]any)

	name, _ := obj["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}

	rawStatus, _ := obj["status"].(string)
	status := compliance.ParseStatus(rawStatus)

	checked, _ := obj["checked"].(bool)
	if status != compliance.StatusComplete {
		checked = false
	}

	return compliance.Item{Name: name, Status: status, Checked: checked}
}
