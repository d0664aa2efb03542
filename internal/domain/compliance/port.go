package compliance

import "context"

// Storage holds a storage-format page body
type Storage struct {
	Value string `json:"value"`
}

// PageBody wraps the representations returned for a page
type PageBody struct {
	Storage *Storage `json:"storage"`
}

// Page is a fetched Confluence page as it comes off the wire
type Page struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Body  *PageBody `json:"body"`
	// Raw keeps the undecoded payload for diagnostics
	Raw []byte `json:"-"`
}

// StorageValue returns the storage body, or false when the response lacks one
func (p *Page) StorageValue() (string, bool) {
	if p == nil || p.Body == nil || p.Body.Storage == nil {
		return "", false
	}

	return p.Body.Storage.Value, true
}

// PageFetcher port (document service)
type PageFetcher interface {
	FetchPage(ctx context.Context, pageID string) (*Page, error)
}

// Extractor derives compliance items from normalized text. Implementations
// never fail; problems degrade to a sentinel item.
type Extractor interface {
	Strategy() Strategy
	Extract(ctx context.Context, text string) []Item
}
