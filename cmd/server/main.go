// ABOUTME: Main entry point for Noteweave MCP server with stdio transport
// ABOUTME: Initializes storage, embedder, and MCP server with all tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/charm"
	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/mcp"
	"github.com/noteweave/noteweave/internal/storage"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage with XDG-compliant paths
	var store *sqlite.Storage
	if cfg.DatabasePath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DatabasePath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Every tool needs embeddings; a missing OPENAI_API_KEY is fatal here.
	embedder, err := llm.NewOpenAIEmbedderWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	// Topic corpus is optional: a missing Charm link disables topic
	// tools but not the rest of the server.
	var corpus storage.TopicCorpus
	if client, err := charm.GetClient(); err == nil {
		corpus = storage.NewCharmCorpus(client)
	} else {
		log.Printf("Topic corpus unavailable: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server := mcpserver.NewMCPServer(
		"Noteweave Knowledge Graph",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, corpus, embedder, cfg, logger)

	log.Println("Noteweave MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
