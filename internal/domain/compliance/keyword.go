package compliance

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Catalog is the fixed, ordered list of topics the keyword scan looks for
var Catalog = []string{
	"Terms of Service",
	"Privacy Policy",
	"Data Processing Agreement",
	"Cookie Policy",
	"GDPR Compliance",
	"CCPA Compliance",
	"SOC 2",
	"ISO 27001",
	"Encryption at Rest",
	"Encryption in Transit",
	"Access Controls",
	"Penetration Testing",
	"Business Registration",
	"Tax Compliance",
	"Trademark Registration",
	"Patent Filing",
	"Employee Handbook",
	"Background Checks",
	"Benefits Compliance",
	"User Agreement",
	"Acceptable Use Policy",
	"Security Policy",
}

// statusWindow is how far after a topic a status token may appear
const statusWindow = 200

type topicMatcher struct {
	name    string
	lower   string
	pattern *regexp.Regexp
}

// KeywordExtractor scans text for catalog topics and the nearest status token after each
type KeywordExtractor struct {
	topics []topicMatcher
}

// NewKeywordExtractor compiles the matchers for the given topics, or the default catalog when none are given
func NewKeywordExtractor(topics ...string) *KeywordExtractor {
	if len(topics) == 0 {
		topics = Catalog
	}

	matchers := make([]topicMatcher, 0, len(topics))
	for _, t := range topics {
		matchers = append(matchers, topicMatcher{
			name:  t,
			lower: strings.ToLower(t),
			pattern: regexp.MustCompile(fmt.Sprintf(
				`(?i)%s[\s\S]{0,%d}?(COMPLETE|IN[ _-]PROGRESS|PENDING|TODO|DONE)`, regexp.QuoteMeta(t), statusWindow,
			)),
		})
	}

	return &KeywordExtractor{topics: matchers}
}

func (k *KeywordExtractor) Strategy() Strategy { return StrategyKeyword }

// Extract never fails; no topic found yields the INFO sentinel
func (k *KeywordExtractor) Extract(_ context.Context, text string) []Item {
	lower := strings.ToLower(text)

	var items []Item
	for _, t := range k.topics {
		if !strings.Contains(lower, t.lower) {
			continue
		}

		status := StatusPending
		if m := t.pattern.FindStringSubmatch(text); m != nil {
			status = tokenStatus(m[1])
		}

		items = append(items, NewItem(t.name, status))
	}

	if len(items) == 0 {
		return NoItemsSentinel()
	}

	return items
}

func tokenStatus(token string) Status {
	upper := strings.ToUpper(token)
	switch {
	case upper == "COMPLETE" || upper == "DONE":
		return StatusComplete
	case strings.HasSuffix(upper, "PROGRESS"):
		return StatusInProgress
	default:
		return StatusPending
	}
}
