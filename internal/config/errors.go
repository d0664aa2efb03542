package config

import "errors"

var (
	ErrConfigNotFound       = errors.New("config file not found")
	ErrInvalidPort          = errors.New("server.port must be between 1 and 65535")
	ErrInvalidStrategy      = errors.New("extraction.strategy must be keyword or ai")
	ErrInvalidProvider      = errors.New("ai.provider must be gemini, openai or anthropic")
	ErrInvalidStorageDriver = errors.New("storage.driver must be memory, mysql, postgres or minio")
	ErrMissingAIKey         = errors.New("ai.apiKey is required when extraction.strategy is ai")
	ErrMissingValue         = errors.New("required config value missing")
	ErrWriteTimeoutTooShort = errors.New("server.writeTimeout must exceed confluence.timeout (plus ai.timeout on the ai strategy)")
	ErrDuplicateAPIKey      = errors.New("server.apiKeys must be unique per tenant")
)
