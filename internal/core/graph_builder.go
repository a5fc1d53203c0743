// ABOUTME: Batch graph construction from stored notes and embeddings
// ABOUTME: Embeds missing vectors, classifies candidate edges, derives paths
package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/models"
	"github.com/noteweave/noteweave/internal/similarity"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
	"github.com/noteweave/noteweave/internal/util"
)

// DefaultMaxNodes bounds a graph build when the caller does not say otherwise
const DefaultMaxNodes = 100

// BuildOptions configures a graph rebuild
type BuildOptions struct {
	// Threshold is the minimum remapped similarity for an edge to exist.
	Threshold float64
	// MaxNodes caps how many notes participate (newest first). Zero means
	// DefaultMaxNodes.
	MaxNodes int
	// TagFilter restricts the build to notes carrying one of these tags.
	TagFilter []string
	// PersistLinks rewrites the note_links table from the built edge set.
	PersistLinks bool
}

// BuildReport is the outcome of a batch operation. Failed counts notes the
// embedding collaborator could not handle; those are logged and skipped, the
// batch itself never aborts for them.
type BuildReport struct {
	RunID     string        `json:"run_id"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Graph     *models.Graph `json:"graph,omitempty"`
}

// GraphBuilder runs batch operations over the note and vector stores
type GraphBuilder struct {
	store    *sqlite.Storage
	embedder llm.Embedder
	logger   *zap.Logger
}

// NewGraphBuilder creates a GraphBuilder. A nil logger disables logging.
func NewGraphBuilder(store *sqlite.Storage, embedder llm.Embedder, logger *zap.Logger) *GraphBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphBuilder{store: store, embedder: embedder, logger: logger}
}

// RebuildGraph derives the full knowledge graph from the current note set:
// it ensures every participating note has an embedding (skipping notes the
// embedding collaborator fails on), classifies every pair whose similarity
// clears the threshold, and derives reasoning paths from the classified
// edges. Edges from removed notes disappear naturally since only current
// notes participate.
func (b *GraphBuilder) RebuildGraph(ctx context.Context, opts BuildOptions) (*BuildReport, error) {
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	report := &BuildReport{RunID: uuid.New().String()}

	notes, err := b.store.Notes().GetNotes(opts.TagFilter, maxNodes)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	modelID := b.embedder.ModelID()
	var nodes []models.Note
	vectors := make(map[int64][]float32, len(notes))

	for i := range notes {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		note := notes[i]

		vector, err := b.ensureEmbedding(ctx, &note, modelID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrCancelled
			}
			// Localized failure: log, count, move on.
			b.logger.Warn("skipping note: embedding failed",
				zap.Int64("note_id", note.ID),
				zap.String("title", note.Title),
				zap.Error(err))
			report.Failed++
			continue
		}
		vectors[note.ID] = vector
		nodes = append(nodes, note)
		report.Succeeded++
	}

	edges, err := b.classifyPairs(ctx, nodes, vectors, opts.Threshold)
	if err != nil {
		return nil, err
	}

	paths := DerivePrerequisitePaths(nodes, edges)
	paths = append(paths, DeriveCausalPaths(nodes, edges)...)

	report.Graph = &models.Graph{Nodes: nodes, Edges: edges, Paths: paths}

	if opts.PersistLinks {
		if err := b.store.Notes().ReplaceLinks(edges); err != nil {
			return nil, fmt.Errorf("failed to persist links: %w", err)
		}
	}

	b.logger.Info("graph rebuilt",
		zap.String("run_id", report.RunID),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("paths", len(paths)),
		zap.Int("skipped", report.Failed))
	return report, nil
}

// ReindexEmbeddings recomputes embeddings for every note. Per-note failures
// are logged and counted; the batch continues.
func (b *GraphBuilder) ReindexEmbeddings(ctx context.Context) (*BuildReport, error) {
	report := &BuildReport{RunID: uuid.New().String()}

	notes, err := b.store.Notes().GetNotes(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	modelID := b.embedder.ModelID()
	for i := range notes {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		note := notes[i]

		vector, err := b.embedder.Embed(ctx, note.EmbeddingText())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrCancelled
			}
			b.logger.Warn("skipping note: embedding failed",
				zap.Int64("note_id", note.ID),
				zap.Error(err))
			report.Failed++
			continue
		}

		// A flaky disk gets one more chance before the note counts as failed.
		if err := util.Do(2, 0, func() error {
			return b.store.Vectors().Put(note.ID, modelID, vector)
		}); err != nil {
			b.logger.Warn("skipping note: vector save failed",
				zap.Int64("note_id", note.ID),
				zap.Error(err))
			report.Failed++
			continue
		}
		report.Succeeded++
	}

	b.logger.Info("embeddings reindexed",
		zap.String("run_id", report.RunID),
		zap.String("model", modelID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

// ensureEmbedding returns the stored vector for a note, embedding and
// saving it when absent.
func (b *GraphBuilder) ensureEmbedding(ctx context.Context, note *models.Note, modelID string) ([]float32, error) {
	vector, err := b.store.Vectors().Get(note.ID, modelID)
	if err != nil {
		return nil, err
	}
	if vector != nil {
		return vector, nil
	}

	vector, err = b.embedder.Embed(ctx, note.EmbeddingText())
	if err != nil {
		return nil, err
	}
	if err := util.Do(2, 0, func() error {
		return b.store.Vectors().Put(note.ID, modelID, vector)
	}); err != nil {
		return nil, err
	}
	return vector, nil
}

// classifyPairs visits every unordered pair once (i < j), so a directional
// type can never exist in both directions between the same pair, and a
// related edge is stored once.
func (b *GraphBuilder) classifyPairs(ctx context.Context, nodes []models.Note, vectors map[int64][]float32, threshold float64) ([]models.Edge, error) {
	var edges []models.Edge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if err := ctx.Err(); err != nil {
				return nil, ErrCancelled
			}
			score, err := similarity.Cosine(vectors[nodes[i].ID], vectors[nodes[j].ID])
			if err != nil {
				return nil, err
			}
			if score < threshold {
				continue
			}
			edges = append(edges, ClassifyRelationship(&nodes[i], &nodes[j], score))
		}
	}
	return edges, nil
}
