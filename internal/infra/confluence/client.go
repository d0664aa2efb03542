package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/dhnext/launchpad/internal/domain/compliance"
)

const (
	serviceName     = "confluence"
	maxErrorBody    = 512
	defaultTimeout  = 30 * time.Second
	defaultRate     = 10.0
	defaultBurst    = 5
	defaultAgent    = "DHNext-Launchpad/1.0"
	pagePathPattern = "/wiki/api/v2/pages/%s"
)

// Config for the Confluence Cloud REST client
type Config struct {
	BaseURL           string
	Email             string
	APIToken          string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper
}

// Client fetches pages in storage format. Single attempt per call, no retries.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultAgent
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// FetchPage GET /wiki/api/v2/pages/{id}?body-format=storage
func (c *Client) FetchPage(ctx context.Context, pageID string) (*compliance.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.cfg.BaseURL + fmt.Sprintf(pagePathPattern, url.PathEscape(pageID)) + "?body-format=storage"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Email != "" && c.cfg.APIToken != "" {
		req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read confluence response: %w", err)
	}

	log.Debug().
		Str("page_id", pageID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("confluence page fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &compliance.TransportError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	var page compliance.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w (%v): %s", compliance.ErrUndecodablePage, err, truncate(string(body), 200))
	}
	page.Raw = body

	return &page, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return lo.Substring(s, 0, uint(n)) + "..."
}
