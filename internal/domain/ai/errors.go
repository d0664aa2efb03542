package ai

import "errors"

var (
	// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")
	// ErrEmptyResponse indicates the provider answered without any candidate text
	ErrEmptyResponse = errors.New("ai response has no candidates")
	// ErrMissingAPIKey is returned when a generator is built without credentials
	ErrMissingAPIKey = errors.New("ai api key is required")
)
