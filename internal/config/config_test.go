package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownGracePeriod)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5.0, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.Confluence.Timeout)
	assert.Equal(t, "keyword", cfg.Extraction.Strategy)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.InDelta(t, 0.1, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 2048, cfg.AI.MaxOutputTokens)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  writeTimeout: 2m
  apiKeys:
    acme: k-acme
confluence:
  baseUrl: https://acme.atlassian.net
  email: ops@acme.io
extraction:
  strategy: ai
ai:
  provider: openai
  apiKey: sk-file
  model: gpt-4o-mini
storage:
  driver: mysql
  mysql:
    host: db
    user: app
    password: pw
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "k-acme", cfg.Server.APIKeys["acme"])
	assert.Equal(t, "https://acme.atlassian.net", cfg.Confluence.BaseURL)
	assert.Equal(t, "ai", cfg.Extraction.Strategy)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 3306, cfg.Storage.MySQL.Port)
	assert.Equal(t, "app:pw@tcp(db:3306)/launchpad?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHPAD_CONFLUENCE_API_TOKEN", "env-token")
	t.Setenv("LAUNCHPAD_AI_API_KEY", "env-ai")
	t.Setenv("LAUNCHPAD_EXTRACTION_STRATEGY", "ai")
	t.Setenv("LAUNCHPAD_STORAGE_DRIVER", "postgres")
	t.Setenv("LAUNCHPAD_POSTGRES_DSN", "postgres://u:p@db/launchpad?sslmode=disable")
	t.Setenv("LAUNCHPAD_MINIO_SECRET_KEY", "minio-secret")
	t.Setenv("LAUNCHPAD_DATABASE_PASSWORD", "db-secret")

	cfg, err := Load(writeConfig(t, "confluence:\n  apiToken: file-token\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Confluence.APIToken)
	assert.Equal(t, "env-ai", cfg.AI.APIKey)
	assert.Equal(t, "ai", cfg.Extraction.Strategy)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "minio-secret", cfg.Storage.Minio.SecretKey)
	assert.Equal(t, "db-secret", cfg.Storage.MySQL.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [oops"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, ErrInvalidPort},
		{"bad strategy", func(c *Config) { c.Extraction.Strategy = "llm" }, ErrInvalidStrategy},
		{"ai without key", func(c *Config) { c.Extraction.Strategy = "ai" }, ErrMissingAIKey},
		{"bad provider", func(c *Config) { c.AI.Provider = "cohere" }, ErrInvalidProvider},
		{"bad driver", func(c *Config) { c.Storage.Driver = "redis" }, ErrInvalidStorageDriver},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = "postgres" }, ErrMissingValue},
		{"write timeout below keyword budget", func(c *Config) { c.Server.WriteTimeout = 30 * time.Second }, ErrWriteTimeoutTooShort},
		{"write timeout below ai budget", func(c *Config) {
			c.Extraction.Strategy = "ai"
			c.AI.APIKey = "k"
			c.Server.WriteTimeout = 60 * time.Second
		}, ErrWriteTimeoutTooShort},
		{"shared api key", func(c *Config) { c.Server.APIKeys = map[string]string{"acme": "same", "globex": "same"} }, ErrDuplicateAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidate_DefaultsCoverAIBudget(t *testing.T) {
	cfg := Default()
	cfg.Extraction.Strategy = "ai"
	cfg.AI.APIKey = "k"

	require.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Confluence.Timeout+cfg.AI.Timeout)
}

func TestValidate_DistinctAPIKeys(t *testing.T) {
	cfg := Default()
	cfg.Server.APIKeys = map[string]string{"acme": "k-acme", "globex": "k-globex"}

	assert.NoError(t, cfg.Validate())
}
