// ABOUTME: Semantic retrieval over topic corpora and the live note store
// ABOUTME: Threshold filter, stable descending rank, optional hierarchy grouping
package core

import (
	"context"
	"sort"
	"strings"

	"github.com/noteweave/noteweave/internal/llm"
	"github.com/noteweave/noteweave/internal/models"
	"github.com/noteweave/noteweave/internal/similarity"
	"github.com/noteweave/noteweave/internal/storage/sqlite"
)

// TopicMatch is a single retrieval hit against a topic corpus
type TopicMatch struct {
	Title      string  `json:"title"`
	Path       string  `json:"path"`
	Similarity float64 `json:"similarity"`
	Summary    string  `json:"summary,omitempty"`
}

// TopicGroup holds matches sharing a top-level category. Groups are ordered
// by the best similarity found inside each group.
type TopicGroup struct {
	Category      string       `json:"category"`
	MaxSimilarity float64      `json:"max_similarity"`
	Matches       []TopicMatch `json:"matches"`
}

// Retriever links queries to topics and notes via vector similarity
type Retriever struct {
	embedder llm.Embedder
}

// NewRetriever creates a Retriever over the given embedding provider
func NewRetriever(embedder llm.Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

// FindRelatedText embeds the query text and ranks the corpus against it.
// Empty query text is a caller error; an empty corpus is not.
func (r *Retriever) FindRelatedText(ctx context.Context, query string, corpus []models.TopicEntry, maxResults int, threshold float64) ([]TopicMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyInput
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return FindRelated(ctx, vector, corpus, maxResults, threshold)
}

// FindRelated ranks corpus entries by remapped cosine similarity to the
// query vector, keeps entries at or above threshold, sorts descending with
// corpus order breaking ties, and truncates to maxResults. The context is
// checked between candidate comparisons; cancellation aborts cleanly with
// no partial results.
func FindRelated(ctx context.Context, query []float32, corpus []models.TopicEntry, maxResults int, threshold float64) ([]TopicMatch, error) {
	matches := make([]TopicMatch, 0, len(corpus))
	for i := range corpus {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		entry := &corpus[i]

		score, err := similarity.Cosine(query, entry.Embedding)
		if err != nil {
			return nil, err
		}
		if score < threshold {
			continue
		}
		matches = append(matches, TopicMatch{
			Title:      entry.Title,
			Path:       entry.Path,
			Similarity: score,
			Summary:    entry.Summary,
		})
	}

	// Stable sort keeps corpus order for equal similarity
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// FindRelatedGrouped runs FindRelated and groups the hits by the first
// segment of each topic's category path ("Uncategorized" when a topic has
// no path). Matches inside a group stay sorted by similarity descending;
// groups are ordered by their maximum member similarity, descending.
func FindRelatedGrouped(ctx context.Context, query []float32, corpus []models.TopicEntry, maxResults int, threshold float64) ([]TopicGroup, error) {
	matches, err := FindRelated(ctx, query, corpus, maxResults, threshold)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int)
	var groups []TopicGroup
	for _, match := range matches {
		category := topicCategory(match.Path)
		idx, ok := byCategory[category]
		if !ok {
			idx = len(groups)
			byCategory[category] = idx
			groups = append(groups, TopicGroup{Category: category})
		}
		groups[idx].Matches = append(groups[idx].Matches, match)
		if match.Similarity > groups[idx].MaxSimilarity {
			groups[idx].MaxSimilarity = match.Similarity
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MaxSimilarity > groups[j].MaxSimilarity
	})
	return groups, nil
}

// SearchNotes sweeps the stored vectors for a model and ranks notes against
// the query vector, applying the same threshold and ordering rules as
// FindRelated. The scan is abandoned cleanly when ctx is cancelled.
func (r *Retriever) SearchNotes(ctx context.Context, vectors *sqlite.VectorStore, modelID string, query []float32, maxResults int, threshold float64) ([]models.NoteMatch, error) {
	it, err := vectors.Scan(ctx, modelID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()

	var matches []models.NoteMatch
	for it.Next() {
		entry := it.Entry()
		score, err := similarity.Cosine(query, entry.Vector)
		if err != nil {
			return nil, err
		}
		if score < threshold {
			continue
		}
		matches = append(matches, models.NoteMatch{Note: entry.Note, Similarity: score})
	}
	if err := it.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

// SearchNotesText embeds the query and delegates to SearchNotes
func (r *Retriever) SearchNotesText(ctx context.Context, vectors *sqlite.VectorStore, query string, maxResults int, threshold float64) ([]models.NoteMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyInput
	}
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.SearchNotes(ctx, vectors, r.embedder.ModelID(), vector, maxResults, threshold)
}

// topicCategory returns the first path segment, or "Uncategorized"
func topicCategory(path string) string {
	if path == "" {
		return "Uncategorized"
	}
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
