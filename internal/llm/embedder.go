// ABOUTME: Embedding provider interface and model dimension registry
// ABOUTME: Callers are generic over Embedder, not over a specific backend
package llm

import "context"

// Embedder turns text into a fixed-dimension float32 vector. Implementations
// may fail transiently; batch callers treat a failure as localized to the
// input being embedded and continue with the rest.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ModelID() string
}

// knownDimensions maps embedding model IDs to their output dimensions.
var knownDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// DimensionFor returns the output dimension for a known model ID, or the
// fallback when the model is unknown.
func DimensionFor(modelID string, fallback int) int {
	if dim, ok := knownDimensions[modelID]; ok {
		return dim
	}
	return fallback
}
