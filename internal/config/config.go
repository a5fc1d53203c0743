// ABOUTME: Centralized configuration for the knowledge graph engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the engine and its surfaces
type Config struct {
	// Storage settings
	DatabasePath string

	// Charm settings (topic corpus sync)
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Graph settings
	SimilarityThreshold float64
	MaxResults          int
	MaxGraphNodes       int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DatabasePath:        getEnv("NOTEWEAVE_DB", ""),
		CharmHost:           getEnv("CHARM_HOST", "charm.2389.dev"),
		CharmDBName:         getEnv("CHARM_DB", "noteweave"),
		AutoSync:            getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:      getEnv("NOTEWEAVE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SimilarityThreshold: getEnvFloat("NOTEWEAVE_SIMILARITY_THRESHOLD", 0.75),
		MaxResults:          getEnvInt("NOTEWEAVE_MAX_RESULTS", 5),
		MaxGraphNodes:       getEnvInt("NOTEWEAVE_MAX_GRAPH_NODES", 100),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("NOTEWEAVE_SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("NOTEWEAVE_MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	if c.MaxGraphNodes <= 0 {
		return fmt.Errorf("NOTEWEAVE_MAX_GRAPH_NODES must be positive, got %d", c.MaxGraphNodes)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
