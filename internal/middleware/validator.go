package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

const maxURLLength = 2048

var (
	tenantPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

	ErrEmptyPageURL = errors.New("confluence page URL cannot be empty")
)

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	if !tenantPattern.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidatePageURL only rejects empty or oversized input; the page id itself is
// checked by the compliance check, which reports it in the result envelope.
func ValidatePageURL(pageURL string) error {
	if pageURL == "" {
		return ErrEmptyPageURL
	}
	if len(pageURL) > maxURLLength {
		return fmt.Errorf("page URL exceeds %d characters", maxURLLength)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if (r >= 32 && r != 127) || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
