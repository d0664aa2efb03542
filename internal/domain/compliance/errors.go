package compliance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURLFormat is returned when a page URL has no pages/<id> segment
	ErrInvalidURLFormat = errors.New("invalid Confluence URL format: expected a URL containing pages/<id>")
	// ErrMalformedPageResponse is returned when a fetched page lacks a storage-format body
	ErrMalformedPageResponse = errors.New("page response has no storage body")
	// ErrUndecodablePage is returned when a 2xx page response is not JSON
	ErrUndecodablePage = errors.New("page response is not valid JSON")
	// ErrUnknownStrategy is returned when the configured extraction strategy is not recognised
	ErrUnknownStrategy = errors.New("unknown extraction strategy")
	// ErrSaveFailed is reported when a finished check could not be persisted
	ErrSaveFailed = errors.New("failed to save compliance result")
)

// TransportError reports a non-success answer from an outbound HTTP collaborator
type TransportError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}

	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}
