package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	appai "github.com/dhnext/launchpad/internal/application/ai"
	"github.com/dhnext/launchpad/internal/config"
	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/domain/compliance"
	"github.com/dhnext/launchpad/internal/domain/workspace"
	"github.com/dhnext/launchpad/internal/infra/ai/anthropic"
	"github.com/dhnext/launchpad/internal/infra/ai/gemini"
	"github.com/dhnext/launchpad/internal/infra/ai/openai"
	"github.com/dhnext/launchpad/internal/infra/confluence"
	mysqlp "github.com/dhnext/launchpad/internal/infra/db/mysql"
	"github.com/dhnext/launchpad/internal/infra/db/postgres"
	"github.com/dhnext/launchpad/internal/infra/storage"
)

// store is what the service needs from a storage adapter
type store interface {
	workspace.Store
	Ping(ctx context.Context) error
}

// openStore connects the configured storage driver. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Storage.Driver) {
	case "memory":
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return storage.NewMemory(), noop, nil

	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		kv := mysqlp.NewKVStore(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Storage.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		kv := postgres.NewKVStore(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv, func() { _ = db.Close() }, nil

	case "minio":
		m := cfg.Storage.Minio
		s, err := storage.NewMinio(ctx, storage.MinioConfig{
			Endpoint:   m.Endpoint,
			Region:     m.Region,
			BucketName: m.BucketName,
			AccessKey:  m.AccessKey,
			SecretKey:  m.SecretKey,
			UseSSL:     m.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("minio init: %w", err)
		}
		return s, noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidStorageDriver, cfg.Storage.Driver)
	}
}

func newFetcher(cfg *config.Config) *confluence.Client {
	if cfg.Confluence.BaseURL == "" {
		log.Warn().Msg("confluence.baseUrl is not set, compliance checks will fail")
	}
	return confluence.NewClient(confluence.Config{
		BaseURL:           cfg.Confluence.BaseURL,
		Email:             cfg.Confluence.Email,
		APIToken:          cfg.Confluence.APIToken,
		Timeout:           cfg.Confluence.Timeout,
		RequestsPerSecond: cfg.Confluence.RequestsPerSecond,
	})
}

func newGenerator(cfg *config.Config) (ai.Generator, error) {
	c := cfg.AI
	switch strings.ToLower(c.Provider) {
	case "gemini":
		return gemini.NewClient(gemini.Config{APIKey: c.APIKey, Model: c.Model, Endpoint: c.Endpoint, Timeout: c.Timeout})
	case "openai":
		return openai.NewClient(c.APIKey, c.Model, c.Endpoint, aiHTTPClient(c))
	case "anthropic":
		cli, err := anthropic.NewClient(c.APIKey, c.Model)
		if err != nil {
			return nil, err
		}
		cli.Timeout = c.Timeout
		return cli, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProvider, c.Provider)
	}
}

// aiHTTPClient applies ai.timeout to providers that accept an http.Client
func aiHTTPClient(c config.AI) *http.Client {
	return &http.Client{Timeout: c.Timeout}
}

// newExtractor builds the extractor for the configured strategy
func newExtractor(cfg *config.Config) (compliance.Extractor, error) {
	strategy, err := compliance.ParseStrategy(cfg.Extraction.Strategy)
	if err != nil {
		return nil, err
	}

	if strategy == compliance.StrategyKeyword {
		return compliance.NewKeywordExtractor(), nil
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("ai generator: %w", err)
	}
	log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("ai extraction configured")

	return appai.NewExtractor(gen, ai.GenerateOptions{
		Temperature:     cfg.AI.Temperature,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	}), nil
}
