// Package config provides environment driven configuration for the
// resume insights services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultGenerativeModel = "gemini-1.5-flash-002"
	DefaultEmbeddingModel  = "text-embedding-004"
	DefaultChunkSize       = 1024
	DefaultChunkOverlap    = 20
	DefaultSimilarityTopK  = 3
	DefaultServerAddr      = ":8080"
	DefaultMaxExtractions  = 2
	DefaultSessionTTL      = 30 * time.Minute
	DefaultFetchTimeout    = 20 * time.Second
)

var validate = validator.New()

// Config carries every tunable the services read. Values come from the
// environment; callers that use a .env file load it before Load runs.
type Config struct {
	// Gemini models and credentials
	GoogleAPIKey    string `validate:"required"`
	GenerativeModel string `validate:"required"`
	EmbeddingModel  string `validate:"required"`

	// Document ingestion
	ChunkSize    int `validate:"gt=0"`
	ChunkOverlap int `validate:"gte=0,ltfield=ChunkSize"`

	// Retrieval
	SimilarityTopK int `validate:"gt=0"`

	// Qdrant; an empty URL selects the in-memory store
	QdrantURL    string
	QdrantAPIKey string

	// HTTP server
	ServerAddr               string        `validate:"required"`
	MaxConcurrentExtractions int           `validate:"gt=0"`
	SessionTTL               time.Duration `validate:"gt=0"`

	// Job posting fetching
	FetchTimeout time.Duration `validate:"gt=0"`
}

// Load assembles a Config from the environment and validates it.
func Load() (*Config, error) {
	chunkSize, err := envInt("CHUNK_SIZE", DefaultChunkSize)
	if err != nil {
		return nil, err
	}
	chunkOverlap, err := envInt("CHUNK_OVERLAP", DefaultChunkOverlap)
	if err != nil {
		return nil, err
	}
	topK, err := envInt("SIMILARITY_TOP_K", DefaultSimilarityTopK)
	if err != nil {
		return nil, err
	}
	maxExtractions, err := envInt("MAX_CONCURRENT_EXTRACTIONS", DefaultMaxExtractions)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := envDuration("SESSION_TTL", DefaultSessionTTL)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := envDuration("FETCH_TIMEOUT", DefaultFetchTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GoogleAPIKey:             os.Getenv("GOOGLE_API_KEY"),
		GenerativeModel:          envOr("GENERATIVE_MODEL", DefaultGenerativeModel),
		EmbeddingModel:           envOr("EMBEDDING_MODEL", DefaultEmbeddingModel),
		ChunkSize:                chunkSize,
		ChunkOverlap:             chunkOverlap,
		SimilarityTopK:           topK,
		QdrantURL:                os.Getenv("QDRANT_URL"),
		QdrantAPIKey:             os.Getenv("QDRANT_API_KEY"),
		ServerAddr:               envOr("SERVER_ADDR", DefaultServerAddr),
		MaxConcurrentExtractions: maxExtractions,
		SessionTTL:               sessionTTL,
		FetchTimeout:             fetchTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigurationError{Message: "invalid configuration", Cause: err}
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigurationError{Message: fmt.Sprintf("%s must be an integer", key), Cause: err}
	}
	return parsed, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, &ConfigurationError{Message: fmt.Sprintf("%s must be a duration like 30m", key), Cause: err}
	}
	return parsed, nil
}
