// ABOUTME: OpenAI-backed Embedder implementation with retry and backoff
// ABOUTME: Uses text-embedding-3-small by default (configurable)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/noteweave/noteweave/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is the default model for embeddings
const DefaultEmbeddingModel = string(openai.SmallEmbedding3)

// ClientConfig holds configuration for the OpenAI embedder
type ClientConfig struct {
	APIKey         string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// OpenAIEmbedder wraps the OpenAI API client with retry logic
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimension  int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIEmbedder creates an embedder with default configuration
func NewOpenAIEmbedder(apiKey string) (*OpenAIEmbedder, error) {
	return NewOpenAIEmbedderWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIEmbedderWithConfig creates an embedder with custom configuration
func NewOpenAIEmbedderWithConfig(config *ClientConfig) (*OpenAIEmbedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	model := config.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}

	return &OpenAIEmbedder{
		client:     openai.NewClient(config.APIKey),
		model:      model,
		dimension:  DimensionFor(model, 1536),
		timeout:    config.Timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// ModelID returns the embedding model identifier
func (c *OpenAIEmbedder) ModelID() string {
	return c.model
}

// Dimension returns the embedding vector dimension
func (c *OpenAIEmbedder) Dimension() int {
	return c.dimension
}

// Embed generates an embedding vector for the given text, retrying with
// exponential backoff on transient failures.
func (c *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.model),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		vector := make([]float32, len(resp.Data[0].Embedding))
		copy(vector, resp.Data[0].Embedding)
		return vector, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}
