// ABOUTME: Note metadata model consumed by the knowledge graph engine
// ABOUTME: Read-only view over externally persisted note content
package models

import (
	"strings"
	"time"
)

// Note is the engine's read-only view of a stored note. The engine never
// mutates notes; content persistence lives outside this module.
type Note struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	KeyConcepts []string  `json:"key_concepts,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasAnyTag reports whether the note carries at least one of the given tags
// (case-insensitive).
func (n *Note) HasAnyTag(tags ...string) bool {
	for _, have := range n.Tags {
		for _, want := range tags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// ConceptOverlap returns the key concepts shared by both notes,
// case-insensitive, in the order they appear on n. Duplicates are collapsed.
func (n *Note) ConceptOverlap(other *Note) []string {
	if len(n.KeyConcepts) == 0 || len(other.KeyConcepts) == 0 {
		return nil
	}

	theirs := make(map[string]bool, len(other.KeyConcepts))
	for _, c := range other.KeyConcepts {
		theirs[strings.ToLower(c)] = true
	}

	var shared []string
	seen := make(map[string]bool)
	for _, c := range n.KeyConcepts {
		key := strings.ToLower(c)
		if theirs[key] && !seen[key] {
			shared = append(shared, c)
			seen[key] = true
		}
	}
	return shared
}

// EmbeddingText returns the text handed to the embedding provider for this
// note: title plus summary plus key concepts, newline separated.
func (n *Note) EmbeddingText() string {
	parts := []string{n.Title}
	if n.Summary != "" {
		parts = append(parts, n.Summary)
	}
	if len(n.KeyConcepts) > 0 {
		parts = append(parts, strings.Join(n.KeyConcepts, ", "))
	}
	return strings.Join(parts, "\n")
}
