package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config.yaml"
	envPrefix   = "LAUNCHPAD_"
)

type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

type Server struct {
	Port                int               `yaml:"port"`
	ReadTimeout         time.Duration     `yaml:"readTimeout"`
	WriteTimeout        time.Duration     `yaml:"writeTimeout"`
	IdleTimeout         time.Duration     `yaml:"idleTimeout"`
	ShutdownGracePeriod time.Duration     `yaml:"shutdownGracePeriod"`
	AllowedOrigins      []string          `yaml:"allowedOrigins"`
	APIKeys             map[string]string `yaml:"apiKeys"`
	RateLimit           RateLimit         `yaml:"rateLimit"`
}

type Confluence struct {
	BaseURL           string        `yaml:"baseUrl"`
	Email             string        `yaml:"email"`
	APIToken          string        `yaml:"apiToken"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
}

type Extraction struct {
	Strategy string `yaml:"strategy"`
}

type AI struct {
	Provider        string        `yaml:"provider"`
	APIKey          string        `yaml:"apiKey"`
	Model           string        `yaml:"model"`
	Endpoint        string        `yaml:"endpoint"`
	Temperature     float64       `yaml:"temperature"`
	MaxOutputTokens int           `yaml:"maxOutputTokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Postgres struct {
	DSN string `yaml:"dsn"`
}

type Minio struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"accessKey"`
	SecretKey  string `yaml:"secretKey"`
	BucketName string `yaml:"bucketName"`
	Region     string `yaml:"region"`
	UseSSL     bool   `yaml:"useSSL"`
}

type Storage struct {
	Driver   string   `yaml:"driver"`
	MySQL    Database `yaml:"mysql"`
	Postgres Postgres `yaml:"postgres"`
	Minio    Minio    `yaml:"minio"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Confluence Confluence `yaml:"confluence"`
	Extraction Extraction `yaml:"extraction"`
	AI         AI         `yaml:"ai"`
	Storage    Storage    `yaml:"storage"`
}

// Default returns the configuration used when a key is absent from the file
func Default() *Config {
	return &Config{
		Server: Server{
			Port:                8080,
			ReadTimeout:         15 * time.Second,
			WriteTimeout:        120 * time.Second,
			IdleTimeout:         60 * time.Second,
			ShutdownGracePeriod: 10 * time.Second,
			AllowedOrigins:      []string{"*"},
			APIKeys:             map[string]string{},
			RateLimit:           RateLimit{RequestsPerSecond: 5, Burst: 10},
		},
		Confluence: Confluence{
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
		},
		Extraction: Extraction{Strategy: "keyword"},
		AI: AI{
			Provider:        "gemini",
			Temperature:     0.1,
			MaxOutputTokens: 2048,
			Timeout:         60 * time.Second,
		},
		Storage: Storage{
			Driver: "memory",
			MySQL:  Database{Host: "localhost", Port: 3306, Name: "launchpad"},
			Minio:  Minio{BucketName: "launchpad", Region: "us-east-1"},
		},
	}
}

// Load baca file config.yaml di atas default, lalu override dari env
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides secrets and a few switches from LAUNCHPAD_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"CONFLUENCE_EMAIL":     &c.Confluence.Email,
		"CONFLUENCE_API_TOKEN": &c.Confluence.APIToken,
		"CONFLUENCE_BASE_URL":  &c.Confluence.BaseURL,
		"AI_API_KEY":           &c.AI.APIKey,
		"AI_PROVIDER":          &c.AI.Provider,
		"EXTRACTION_STRATEGY":  &c.Extraction.Strategy,
		"STORAGE_DRIVER":       &c.Storage.Driver,
		"DATABASE_PASSWORD":    &c.Storage.MySQL.Password,
		"POSTGRES_DSN":         &c.Storage.Postgres.DSN,
		"MINIO_SECRET_KEY":     &c.Storage.Minio.SecretKey,
	}
	for name, target := range overrides {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
}

// Validate checks enum-like settings and required secrets
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	switch strings.ToLower(c.Extraction.Strategy) {
	case "keyword":
	case "ai":
		if c.AI.APIKey == "" {
			return ErrMissingAIKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, c.Extraction.Strategy)
	}

	switch strings.ToLower(c.AI.Provider) {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.AI.Provider)
	}

	// a check must be able to answer before the server drops the connection
	budget := c.Confluence.Timeout
	if strings.EqualFold(c.Extraction.Strategy, "ai") {
		budget += c.AI.Timeout
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= budget {
		return fmt.Errorf("%w: %s <= %s", ErrWriteTimeoutTooShort, c.Server.WriteTimeout, budget)
	}

	seen := make(map[string]string, len(c.Server.APIKeys))
	for tenant, key := range c.Server.APIKeys {
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: tenants %q and %q", ErrDuplicateAPIKey, other, tenant)
		}
		seen[key] = tenant
	}

	switch strings.ToLower(c.Storage.Driver) {
	case "memory", "mysql", "minio":
	case "postgres":
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("%w: storage.postgres.dsn", ErrMissingValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorageDriver, c.Storage.Driver)
	}

	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Storage.MySQL.User,
		c.Storage.MySQL.Password,
		c.Storage.MySQL.Host,
		c.Storage.MySQL.Port,
		c.Storage.MySQL.Name,
	)
}
