package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"

	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/infra/ai/prompt"
)

const DefaultModel = "claude-3-5-haiku-latest"

type promptFunc func(systemPrompt, userPrompt string, settings types.RequestSettings) (string, error)

type Client struct {
	apiKey string
	model  string
	call   promptFunc

	// Timeout bounds each Generate call on top of the caller's context.
	// llmkit has no client timeout of its own, so the request itself keeps
	// running in the background until the API answers.
	Timeout time.Duration
}

func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	c := &Client{apiKey: apiKey, model: model}
	c.call = c.messages
	return c, nil
}

func (c *Client) messages(systemPrompt, userPrompt string, settings types.RequestSettings) (string, error) {
	resp, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, "", c.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", ai.ErrEmptyResponse
	}
	return resp.Content[0].Text, nil
}

type reply struct {
	text string
	err  error
}

// Generate sends one messages request. llmkit takes no context, so the call
// runs in its own goroutine and ctx only bounds how long we wait for it.
func (c *Client) Generate(ctx context.Context, userPrompt string, opts ai.GenerateOptions) (string, error) {
	settings := types.RequestSettings{
		Model:       c.model,
		MaxTokens:   opts.MaxOutputTokens,
		Temperature: opts.Temperature,
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	done := make(chan reply, 1)
	go func() {
		text, err := c.call(prompt.GetSystemPrompt(), userPrompt, settings)
		done <- reply{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}
