// ABOUTME: MCP tool definitions and registration for the noteweave server
// ABOUTME: Defines JSON schemas for the 5 knowledge-graph tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/storage"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.Storage, corpus storage.TopicCorpus, embedder llm.Embedder, cfg *config.Config, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	handlers := &Handlers{
		store:     store,
		corpus:    corpus,
		embedder:  embedder,
		retriever: core.NewRetriever(embedder),
		builder:   core.NewGraphBuilder(store, embedder, logger),
		cfg:       cfg,
		logger:    logger,
	}

	// 1. search_notes - semantic search over the live note store
	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Search stored notes by meaning. Returns notes ranked by semantic similarity to the query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity in [0,1] for a result to qualify",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	// 2. link_topics - search the standalone topic corpus
	server.AddTool(mcp.Tool{
		Name:        "link_topics",
		Description: "Find topics related to a query in the topic corpus, flat or grouped by top-level category.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Query text to link against topics",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of matches (default: 5)",
					"default":     5,
				},
				"hierarchical": map[string]interface{}{
					"type":        "boolean",
					"description": "Group matches by top-level category",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.LinkTopics)

	// 3. build_graph - rebuild the knowledge graph from current notes
	server.AddTool(mcp.Tool{
		Name:        "build_graph",
		Description: "Rebuild the note knowledge graph: classify relationships between similar notes and derive reasoning paths.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity for an edge to exist",
				},
				"max_nodes": map[string]interface{}{
					"type":        "number",
					"description": "Maximum notes to include (default: 100)",
					"default":     100,
				},
				"persist": map[string]interface{}{
					"type":        "boolean",
					"description": "Persist the built edges to the note_links table",
					"default":     false,
				},
			},
		},
	}, handlers.BuildGraph)

	// 4. query_reasoning - ask why two notes are related
	server.AddTool(mcp.Tool{
		Name:        "query_reasoning",
		Description: "Answer a natural-language question about relationships between notes (prerequisites, causal links, dependencies).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language relationship question",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryReasoning)

	// 5. reindex_embeddings - recompute embeddings for all notes
	server.AddTool(mcp.Tool{
		Name:        "reindex_embeddings",
		Description: "Recompute embedding vectors for every note. Reports per-note success and failure counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReindexEmbeddings)

	return handlers
}
