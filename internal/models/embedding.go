// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines Embedding, ModelInfo, and NoteMatch structures
package models

import "time"

// Embedding represents a stored embedding vector for a note. At most one
// embedding exists per (note, model) pair; a later save overwrites.
type Embedding struct {
	NoteID    int64     `json:"note_id"`
	ModelID   string    `json:"model_id"`
	Vector    []float32 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// ModelInfo describes a registered embedding model. Registration is
// append-only: the dimension recorded on first save is never overwritten,
// so later dimension drift surfaces as an error instead of silent corruption.
type ModelInfo struct {
	ModelID     string `json:"model_id"`
	Dimension   int    `json:"dimension"`
	Description string `json:"description,omitempty"`
}

// NoteMatch is a note-scan search result with its remapped cosine similarity.
type NoteMatch struct {
	Note       Note    `json:"note"`
	Similarity float64 `json:"similarity"`
}
