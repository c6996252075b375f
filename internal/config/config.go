// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.wandergenie/config.yaml or ./config.yaml)
//  3. Default values
//
// Configuration categories:
//   - Generation: model name, temperature, max tokens, top-p
//   - Embedding: embedder model and output dimension
//   - RAG: chunk size, chunk overlap, retrieval top-k
//   - Storage: PostgreSQL connection (see storage.go)
//
// The Gemini API key is read directly by Genkit from GEMINI_API_KEY;
// Validate only checks that it is present.
//
// Error handling uses sentinel errors so callers can match with errors.Is
// and wrap with fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the Gemini API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the generation model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTopP indicates the top-p value is out of range.
	ErrInvalidTopP = errors.New("invalid top_p")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidEmbeddingDim indicates the embedding dimension is unusable.
	ErrInvalidEmbeddingDim = errors.New("invalid embedding dimension")

	// ErrInvalidChunkSize indicates the chunk size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the chunk overlap is out of range.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidTopK indicates the retrieval top-k is out of range.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")
)

const (
	// DefaultGenerationModel is the default chat-completion model.
	DefaultGenerationModel = "gemini-2.5-flash"

	// DefaultEmbedderModel is the default Gemini embedder model.
	// gemini-embedding-001 outputs 3072 dimensions by default, but supports
	// truncation to 768 via OutputDimensionality (Matryoshka Representation
	// Learning). The travel_chunks schema uses vector(768).
	DefaultEmbedderModel = "gemini-embedding-001"

	// DefaultEmbeddingDim is the default embedding output dimension.
	// Must match the vector column dimension in db/migrations.
	DefaultEmbeddingDim = 768

	// DefaultChunkSize is the default chunk window in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the default overlap between adjacent chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the default number of passages retrieved per query.
	DefaultTopK = 5
)

// Config stores application configuration.
type Config struct {
	// Generation configuration
	GenerationModel string  `mapstructure:"generation_model"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	TopP            float32 `mapstructure:"top_p"`

	// Embedding configuration
	EmbedderModel string `mapstructure:"embedder_model"`
	EmbeddingDim  int    `mapstructure:"embedding_dim"`

	// RAG configuration
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
	TopK         int `mapstructure:"top_k"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	// Storage configuration (see storage.go)
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDBName   string `mapstructure:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".wandergenie")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL, if set, overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generation_model", DefaultGenerationModel)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("top_p", 0.95)

	// Embedding defaults
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("embedding_dim", DefaultEmbeddingDim)

	// RAG defaults
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)
	v.SetDefault("top_k", DefaultTopK)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	// PostgreSQL defaults for local development
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "wandergenie")
	v.SetDefault("postgres_password", "wandergenie_dev_password")
	v.SetDefault("postgres_db_name", "wandergenie")
	v.SetDefault("postgres_ssl_mode", "disable")
}

// bindEnvVariables binds environment overrides explicitly.
// GEMINI_API_KEY is read directly by Genkit, not via Viper; Validate
// only checks its presence.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("generation_model", "WANDERGENIE_GENERATION_MODEL")
	mustBind("embedder_model", "WANDERGENIE_EMBEDDER_MODEL")
	mustBind("chunk_size", "WANDERGENIE_CHUNK_SIZE")
	mustBind("chunk_overlap", "WANDERGENIE_CHUNK_OVERLAP")
	mustBind("top_k", "WANDERGENIE_TOP_K")
	mustBind("log_level", "WANDERGENIE_LOG_LEVEL")
	mustBind("log_json", "WANDERGENIE_LOG_JSON")
}
