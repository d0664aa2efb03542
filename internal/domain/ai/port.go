package ai

import "context"

// GenerateOptions bounds a single generation call
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// DefaultGenerateOptions keeps replies near-deterministic and bounded
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Temperature: 0.1, MaxOutputTokens: 2048}
}

// Generator port: sends one prompt to a text-generation endpoint and returns
// the text of the first candidate.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
