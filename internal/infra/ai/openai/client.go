package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/domain/compliance"
	"github.com/dhnext/launchpad/internal/infra/ai/prompt"
)

const (
	DefaultModel = "gpt-4o-mini"
	serviceName  = "openai"
)

type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a chat-completions generator. baseURL is optional (proxies, tests).
func NewClient(apiKey, model, baseURL string, httpClient *http.Client) (*Client, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}, nil
}

func (c *Client) Generate(ctx context.Context, userPrompt string, opts ai.GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens,
	// they also reject a custom temperature
	if isReasoningModel(c.Model) {
		req.MaxCompletionTokens = opts.MaxOutputTokens
	} else {
		req.MaxTokens = opts.MaxOutputTokens
		req.Temperature = float32(opts.Temperature)
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		te := &compliance.TransportError{Service: serviceName, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", ai.ErrQuotaExceeded, te)
		}
		return te
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &compliance.TransportError{Service: serviceName, StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}

	return fmt.Errorf("failed to create chat completion: %w", err)
}
