package compliance

import "regexp"

var pageIDPattern = regexp.MustCompile(`pages/(\d+)`)

// ExtractPageID returns the numeric page id from a Confluence page URL
func ExtractPageID(pageURL string) (string, error) {
	m := pageIDPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", ErrInvalidURLFormat
	}

	return m[1], nil
}
