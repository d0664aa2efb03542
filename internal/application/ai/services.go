package ai

import (
	"context"

	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/domain/compliance"
	"github.com/dhnext/launchpad/internal/infra/ai/prompt"
	"github.com/rs/zerolog/log"
)

// Extractor delegates item extraction to a text-generation endpoint
type Extractor struct {
	generator ai.Generator
	opts      ai.GenerateOptions
}

func NewExtractor(generator ai.Generator, opts ai.GenerateOptions) *Extractor {
	defaults := ai.DefaultGenerateOptions()
	if opts.Temperature <= 0 {
		opts.Temperature = defaults.Temperature
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = defaults.MaxOutputTokens
	}
	return &Extractor{generator: generator, opts: opts}
}

func (e *Extractor) Strategy() compliance.Strategy { return compliance.StrategyAI }

// Extract never fails: transport or parse problems come back as a single INFO item
func (e *Extractor) Extract(ctx context.Context, text string) []compliance.Item {
	reply, err := e.generator.Generate(ctx, prompt.ComplianceExtraction(text), e.opts)
	if err != nil {
		log.Warn().Err(err).Msg("ai generation failed")
		return compliance.FailureSentinel(err.Error())
	}

	items, err := parseItems(reply)
	if err != nil {
		log.Warn().Err(err).Int("reply_len", len(reply)).Msg("ai reply rejected")
		return compliance.FailureSentinel(err.Error())
	}

	if len(items) == 0 {
		return compliance.NoItemsSentinel()
	}

	log.Debug().Int("items", len(items)).Msg("ai extraction complete")
	return items
}
