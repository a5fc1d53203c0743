// ABOUTME: MCP tool handler implementations for the noteweave server
// ABOUTME: Wraps engine operations with argument parsing and JSON results
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/storage"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store     *sqlite.Storage
	corpus    storage.TopicCorpus
	embedder  llm.Embedder
	retriever *core.Retriever
	builder   *core.GraphBuilder
	cfg       *config.Config
	logger    *zap.Logger
}

// SearchNotes handles the search_notes tool
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := int(request.GetFloat("max_results", float64(h.cfg.MaxResults)))
	threshold := request.GetFloat("threshold", h.cfg.SimilarityThreshold)

	matches, err := h.retriever.SearchNotesText(ctx, h.store.Vectors(), query, maxResults, threshold)
	if err != nil {
		if errors.Is(err, core.ErrEmptyInput) {
			return mcp.NewToolResultError("query must not be empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"query":   query,
		"matches": matches,
		"count":   len(matches),
	})
}

// LinkTopics handles the link_topics tool
func (h *Handlers) LinkTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if h.corpus == nil {
		return mcp.NewToolResultError("no topic corpus configured"), nil
	}
	maxResults := int(request.GetFloat("max_results", float64(h.cfg.MaxResults)))
	hierarchical := request.GetBool("hierarchical", false)

	entries, err := h.corpus.All()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load topic corpus: %v", err)), nil
	}

	vector, err := h.embedder.Embed(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}

	if hierarchical {
		groups, err := core.FindRelatedGrouped(ctx, vector, entries, maxResults, h.cfg.SimilarityThreshold)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("topic linking failed: %v", err)), nil
		}
		return jsonResult(map[string]interface{}{"query": query, "groups": groups})
	}

	matches, err := core.FindRelated(ctx, vector, entries, maxResults, h.cfg.SimilarityThreshold)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("topic linking failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"query": query, "matches": matches})
}

// BuildGraph handles the build_graph tool
func (h *Handlers) BuildGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := core.BuildOptions{
		Threshold:    request.GetFloat("threshold", h.cfg.SimilarityThreshold),
		MaxNodes:     int(request.GetFloat("max_nodes", float64(h.cfg.MaxGraphNodes))),
		PersistLinks: request.GetBool("persist", false),
	}

	report, err := h.builder.RebuildGraph(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph build failed: %v", err)), nil
	}
	return jsonResult(report)
}

// QueryReasoning handles the query_reasoning tool
func (h *Handlers) QueryReasoning(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	report, err := h.builder.RebuildGraph(ctx, core.BuildOptions{
		Threshold: h.cfg.SimilarityThreshold,
		MaxNodes:  h.cfg.MaxGraphNodes,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph build failed: %v", err)), nil
	}

	result := core.AnswerQuery(report.Graph.Nodes, report.Graph.Edges, query)
	return jsonResult(result)
}

// ReindexEmbeddings handles the reindex_embeddings tool
func (h *Handlers) ReindexEmbeddings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.builder.ReindexEmbeddings(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reindex failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"run_id":    report.RunID,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})
}

// jsonResult marshals a value into a text tool result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
