package gemini

import (
	"bytes"
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

	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/domain/compliance"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-flash"
	serviceName     = "gemini"
	maxErrorBody    = 512
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Config for the Gemini generateContent client
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ai.ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.Endpoint = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
	}, nil
}

// Generate POST {endpoint}/models/{model}:generateContent, returns the first candidate's text
func (c *Client) Generate(ctx context.Context, prompt string, opts ai.GenerateOptions) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	log.Debug().
		Str("model", c.cfg.Model).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gemini generateContent")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		te := &compliance.TransportError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %w", ai.ErrQuotaExceeded, te)
		}
		return "", te
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ai.ErrEmptyResponse
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return lo.Substring(s, 0, uint(n)) + "..."
}
