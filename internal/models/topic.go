// ABOUTME: Topic entry model for standalone topic-corpus search
// ABOUTME: Append-only entries with hierarchical slash-separated category paths
package models

import "time"

// TopicEntry is a standalone searchable topic, independent of the live note
// store. Entries are created once and appended to a corpus; the corpus only
// grows, entries themselves are immutable.
type TopicEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"` // slash-separated category, e.g. "ML/NN"
	Embedding []float32 `json:"embedding"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Category returns the first segment of the topic's path, or "Uncategorized"
// when the topic has no path. Deeper hierarchy levels are not reflected in
// the default grouped view.
func (t *TopicEntry) Category() string {
	if t.Path == "" {
		return "Uncategorized"
	}
	for i := 0; i < len(t.Path); i++ {
		if t.Path[i] == '/' {
			return t.Path[:i]
		}
	}
	return t.Path
}
