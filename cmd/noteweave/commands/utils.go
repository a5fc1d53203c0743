// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Storage/embedder construction, formatting, and validation helpers
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
)

// openStorage opens storage at the configured or default path
func openStorage(cfg *config.Config) (*sqlite.Storage, error) {
	if cfg != nil && cfg.DatabasePath != "" {
		return sqlite.NewStorageWithPath(cfg.DatabasePath)
	}
	return sqlite.NewStorage()
}

// newEmbedder builds the configured embedding provider
func newEmbedder(cfg *config.Config) (llm.Embedder, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return llm.NewOpenAIEmbedderWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// splitList splits a comma-separated flag value into trimmed entries
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// validateThreshold returns error if t is outside [0,1]
func validateThreshold(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %g", t)
	}
	return nil
}
