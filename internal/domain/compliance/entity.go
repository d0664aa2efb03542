package compliance

import (
	"strings"
	"time"
)

// Status is the completion state of a compliance item
type Status string

const (
	StatusComplete   Status = "COMPLETE"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPending    Status = "PENDING"
	// StatusInfo marks a sentinel item, never a real compliance state
	StatusInfo Status = "INFO"
)

// ParseStatus maps a free-form status string onto the four known states.
// Unknown spellings fall back to PENDING.
func ParseStatus(raw string) Status {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)

	switch s {
	case "COMPLETE", "COMPLETED", "DONE":
		return StatusComplete
	case "IN_PROGRESS", "INPROGRESS":
		return StatusInProgress
	case "PENDING", "TODO", "TO_DO":
		return StatusPending
	default:
		return StatusPending
	}
}

// Item is one named compliance topic with its status
type Item struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Checked bool   `json:"checked"`
}

// NewItem builds an item whose checked flag follows its status
func NewItem(name string, status Status) Item {
	return Item{Name: name, Status: status, Checked: status == StatusComplete}
}

const (
	// NoItemsDetected is the name of the sentinel emitted when nothing matched
	NoItemsDetected = "No compliance items detected"
	// AIFailurePrefix prefixes the sentinel emitted when AI extraction fails
	AIFailurePrefix = "AI Analysis Failed: "
)

// NoItemsSentinel returns the single-item list used when no topic was found
func NoItemsSentinel() []Item {
	return []Item{{Name: NoItemsDetected, Status: StatusInfo}}
}

// FailureSentinel returns the single-item list used when extraction failed
func FailureSentinel(reason string) []Item {
	return []Item{{Name: AIFailurePrefix + reason, Status: StatusInfo}}
}

// Strategy names an extraction strategy
type Strategy string

const (
	StrategyKeyword Strategy = "keyword"
	StrategyAI      Strategy = "ai"
)

// ParseStrategy validates a configured strategy name
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case StrategyKeyword, "":
		return StrategyKeyword, nil
	case StrategyAI:
		return StrategyAI, nil
	default:
		return "", ErrUnknownStrategy
	}
}

// ResultStatus is the outcome of a compliance check
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// Result is the envelope returned to the panel and persisted per tenant
type Result struct {
	Status    ResultStatus `json:"status"`
	PageTitle string       `json:"pageTitle,omitempty"`
	PageURL   string       `json:"pageUrl,omitempty"`
	Items     []Item       `json:"items,omitempty"`
	Strategy  Strategy     `json:"strategy,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Message   string       `json:"message,omitempty"`
}

// Succeeded builds a success envelope
func Succeeded(title, pageURL string, items []Item, strategy Strategy, at time.Time) Result {
	return Result{
		Status:    ResultSuccess,
		PageTitle: title,
		PageURL:   pageURL,
		Items:     items,
		Strategy:  strategy,
		Timestamp: at.UTC(),
	}
}

// Failed builds an error envelope
func Failed(message string, at time.Time) Result {
	return Result{
		Status:    ResultError,
		Message:   message,
		Timestamp: at.UTC(),
	}
}
