package config

import (
	"fmt"
	"os"
)

// validSSLModes are the sslmode values accepted by libpq/pgx.
var validSSLModes = map[string]struct{}{
	"disable":     {},
	"allow":       {},
	"prefer":      {},
	"require":     {},
	"verify-ca":   {},
	"verify-full": {},
}

// Validate checks all configuration values and fails fast with a sentinel
// error describing the first problem found.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.GenerationModel == "" {
		return fmt.Errorf("%w: generation_model must not be empty", ErrInvalidModelName)
	}

	// Temperature range: 0.0 (deterministic) to 2.0 (maximum creativity)
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.MaxTokens < 1 || c.MaxTokens > 2_097_152 {
		return fmt.Errorf("%w: must be between 1 and 2097152, got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.TopP < 0.0 || c.TopP > 1.0 {
		return fmt.Errorf("%w: must be between 0.0 and 1.0, got %.2f", ErrInvalidTopP, c.TopP)
	}

	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model must not be empty", ErrInvalidEmbedderModel)
	}

	// gemini-embedding-001 supports output dimensions up to 3072; the
	// stored schema dimension must match (see db/migrations).
	if c.EmbeddingDim < 1 || c.EmbeddingDim > 3072 {
		return fmt.Errorf("%w: must be between 1 and 3072, got %d", ErrInvalidEmbeddingDim, c.EmbeddingDim)
	}

	if c.ChunkSize < 100 || c.ChunkSize > 100_000 {
		return fmt.Errorf("%w: must be between 100 and 100000, got %d", ErrInvalidChunkSize, c.ChunkSize)
	}

	// Overlap must be strictly less than chunk size or chunking cannot advance.
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: must be in [0, chunk_size), got %d with chunk_size %d",
			ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}

	if c.TopK < 1 || c.TopK > 100 {
		return fmt.Errorf("%w: must be between 1 and 100, got %d", ErrInvalidTopK, c.TopK)
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("%w: postgres_host must not be empty", ErrInvalidPostgresHost)
	}

	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPostgresPort, c.PostgresPort)
	}

	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: postgres_db_name must not be empty", ErrInvalidPostgresDBName)
	}

	if _, ok := validSSLModes[c.PostgresSSLMode]; !ok {
		return fmt.Errorf("%w: got %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}

	// Genkit reads the key itself; fail fast here so the error surfaces at
	// startup instead of on the first embedding call.
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is not set", ErrMissingAPIKey)
	}

	return nil
}
