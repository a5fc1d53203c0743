// ABOUTME: Vector storage keyed by (note_id, model_id) with model registry
// ABOUTME: Stores vectors as little-endian float32 BLOBs with a sharded cache
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/noteweave/noteweave/internal/models"
	"github.com/noteweave/noteweave/internal/similarity"
)

// VectorStore owns embedding vectors per (note, model) pair. A vector read
// consults the in-memory cache before touching SQLite; the cache is populated
// on both Put and Get miss-then-load.
type VectorStore struct {
	db    *DB
	cache *vectorCache
}

// NewVectorStore creates a VectorStore over the given database
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db, cache: newVectorCache()}
}

// Put saves a vector, overwriting any previous vector for the same
// (note, model) key. Writing a vector for a new model also registers that
// model's dimension; registration is append-only, so a vector whose length
// disagrees with the registered dimension is rejected.
func (s *VectorStore) Put(noteID int64, modelID string, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector for note %d model %s", noteID, modelID)
	}

	dim, err := s.registerModel(modelID, len(vector), "")
	if err != nil {
		return err
	}
	if dim != len(vector) {
		return fmt.Errorf("%w: model %s registered with dimension %d, got %d",
			similarity.ErrDimensionMismatch, modelID, dim, len(vector))
	}

	// Single-row upsert; SQLite makes it atomic, so a failed write never
	// leaves a partially overwritten vector behind.
	_, err = s.db.Exec(`
		INSERT INTO embeddings (note_id, model_id, vector, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(note_id, model_id) DO UPDATE SET
			vector = excluded.vector,
			created_at = excluded.created_at
	`, noteID, modelID, vectorToBlob(vector), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save vector for note %d: %w", noteID, err)
	}

	s.cache.put(noteID, modelID, vector)
	return nil
}

// Get returns the stored vector, or nil if absent.
func (s *VectorStore) Get(noteID int64, modelID string) ([]float32, error) {
	if cached := s.cache.get(noteID, modelID); cached != nil {
		return cached, nil
	}

	var blob []byte
	err := s.db.QueryRow(`
		SELECT vector FROM embeddings WHERE note_id = ? AND model_id = ?
	`, noteID, modelID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vector for note %d: %w", noteID, err)
	}

	vector := blobToVector(blob)
	s.cache.put(noteID, modelID, vector)
	return vector, nil
}

// Delete removes the vector for a (note, model) pair
func (s *VectorStore) Delete(noteID int64, modelID string) error {
	_, err := s.db.Exec(`DELETE FROM embeddings WHERE note_id = ? AND model_id = ?`, noteID, modelID)
	if err != nil {
		return fmt.Errorf("failed to delete vector for note %d: %w", noteID, err)
	}
	s.cache.drop(noteID, modelID)
	return nil
}

// ScanEntry is one element of a corpus scan: the vector plus the note
// metadata it belongs to.
type ScanEntry struct {
	NoteID int64
	Vector []float32
	Note   models.Note
}

// EmbeddingIterator walks a corpus scan lazily. Each Scan call opens a fresh
// cursor, so re-issuing Scan produces an independent, restartable sequence.
type EmbeddingIterator struct {
	ctx   context.Context
	rows  *sql.Rows
	entry ScanEntry
	err   error
}

// Scan iterates all vectors stored for a model joined with note metadata.
// The iterator honors ctx between rows so an expensive sweep can be
// abandoned cleanly.
func (s *VectorStore) Scan(ctx context.Context, modelID string) (*EmbeddingIterator, error) {
	rows, err := s.db.Query(`
		SELECT e.note_id, e.vector, n.title, n.summary, n.tags, n.key_concepts, n.created_at
		FROM embeddings e
		JOIN notes n ON n.id = e.note_id
		WHERE e.model_id = ?
		ORDER BY e.note_id ASC
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan embeddings for model %s: %w", modelID, err)
	}
	return &EmbeddingIterator{ctx: ctx, rows: rows}, nil
}

// Next advances the iterator. It returns false at the end of the sequence,
// on a row error, or when the context is cancelled; check Err afterwards.
func (it *EmbeddingIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.err = err
		_ = it.rows.Close()
		return false
	}
	if !it.rows.Next() {
		it.err = it.rows.Err()
		return false
	}

	var (
		blob     []byte
		summary  sql.NullString
		tags     sql.NullString
		concepts sql.NullString
	)
	note := models.Note{}
	if err := it.rows.Scan(&it.entry.NoteID, &blob, &note.Title, &summary, &tags, &concepts, &note.CreatedAt); err != nil {
		it.err = err
		return false
	}

	note.ID = it.entry.NoteID
	if summary.Valid {
		note.Summary = summary.String
	}
	note.Tags = decodeStringList(tags)
	note.KeyConcepts = decodeStringList(concepts)

	it.entry.Vector = blobToVector(blob)
	it.entry.Note = note
	return true
}

// Entry returns the current scan entry
func (it *EmbeddingIterator) Entry() ScanEntry {
	return it.entry
}

// Err returns the first error encountered during iteration
func (it *EmbeddingIterator) Err() error {
	return it.err
}

// Close releases the underlying cursor
func (it *EmbeddingIterator) Close() error {
	return it.rows.Close()
}

// registerModel records the model's dimension on first use and returns the
// registered dimension. INSERT OR IGNORE keeps registration append-only.
func (s *VectorStore) registerModel(modelID string, dimension int, description string) (int, error) {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO embedding_models (model_id, dimension, description, created_at)
		VALUES (?, ?, ?, ?)
	`, modelID, dimension, description, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to register model %s: %w", modelID, err)
	}

	var registered int
	err = s.db.QueryRow(`SELECT dimension FROM embedding_models WHERE model_id = ?`, modelID).Scan(&registered)
	if err != nil {
		return 0, fmt.Errorf("failed to read model registry for %s: %w", modelID, err)
	}
	return registered, nil
}

// GetModel returns registry info for a model, or nil if unregistered.
func (s *VectorStore) GetModel(modelID string) (*models.ModelInfo, error) {
	info := models.ModelInfo{ModelID: modelID}
	var description sql.NullString
	err := s.db.QueryRow(`
		SELECT dimension, description FROM embedding_models WHERE model_id = ?
	`, modelID).Scan(&info.Dimension, &description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model registry for %s: %w", modelID, err)
	}
	if description.Valid {
		info.Description = description.String
	}
	return &info, nil
}

// Count returns the number of vectors stored for a model
func (s *VectorStore) Count(modelID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM embeddings WHERE model_id = ?`, modelID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return n, nil
}

// vectorToBlob encodes a vector as a fixed-width little-endian float32 array.
// No length prefix: the dimensionality is implied by the model registry.
func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector decodes a little-endian float32 blob
func blobToVector(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
}

// decodeStringList unmarshals a JSON string array column, tolerating NULL
func decodeStringList(col sql.NullString) []string {
	if !col.Valid || col.String == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(col.String), &list); err != nil {
		return nil
	}
	return list
}
