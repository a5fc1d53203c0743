// ABOUTME: Note metadata store backing the engine's read-only note boundary
// ABOUTME: Tags and key concepts serialized as JSON arrays in TEXT columns
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noteweave/noteweave/internal/models"
)

// NoteStore handles note metadata persistence
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Save inserts or updates note metadata
func (s *NoteStore) Save(note *models.Note) error {
	if note.Title == "" {
		return fmt.Errorf("note title is required")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	tags, err := encodeStringList(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	concepts, err := encodeStringList(note.KeyConcepts)
	if err != nil {
		return fmt.Errorf("failed to encode key concepts: %w", err)
	}

	if note.ID == 0 {
		result, err := s.db.Exec(`
			INSERT INTO notes (title, summary, tags, key_concepts, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, note.Title, nullString(note.Summary), tags, concepts, note.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}
		note.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read note id: %w", err)
		}
		return nil
	}

	_, err = s.db.Exec(`
		INSERT INTO notes (id, title, summary, tags, key_concepts, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			tags = excluded.tags,
			key_concepts = excluded.key_concepts
	`, note.ID, note.Title, nullString(note.Summary), tags, concepts, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save note %d: %w", note.ID, err)
	}
	return nil
}

// Get retrieves a note by ID, or nil if absent
func (s *NoteStore) Get(id int64) (*models.Note, error) {
	row := s.db.QueryRow(`
		SELECT id, title, summary, tags, key_concepts, created_at
		FROM notes WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load note %d: %w", id, err)
	}
	return note, nil
}

// GetNotes returns notes, newest first, optionally filtered to notes carrying
// at least one of the given tags, truncated to limit when limit > 0.
func (s *NoteStore) GetNotes(tagFilter []string, limit int) ([]models.Note, error) {
	rows, err := s.db.Query(`
		SELECT id, title, summary, tags, key_concepts, created_at
		FROM notes ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		if len(tagFilter) > 0 && !note.HasAnyTag(tagFilter...) {
			continue
		}
		notes = append(notes, *note)
		if limit > 0 && len(notes) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// Delete removes a note; embeddings and links cascade
func (s *NoteStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// ReplaceLinks rewrites the precomputed link table from a freshly built edge
// set. Stale links from removed notes disappear with the rewrite.
func (s *NoteStore) ReplaceLinks(edges []models.Edge) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin link rewrite: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM note_links`); err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}
	for _, edge := range edges {
		_, err := tx.Exec(`
			INSERT INTO note_links (source_id, target_id, similarity, relationship_type)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(source_id, target_id) DO UPDATE SET
				similarity = excluded.similarity,
				relationship_type = excluded.relationship_type
		`, edge.SourceID, edge.TargetID, edge.Similarity, string(edge.Type))
		if err != nil {
			return fmt.Errorf("failed to save link %d->%d: %w", edge.SourceID, edge.TargetID, err)
		}
	}
	return tx.Commit()
}

// GetRelatedNotes returns precomputed links touching a note, strongest first
func (s *NoteStore) GetRelatedNotes(noteID int64) ([]models.NoteLink, error) {
	rows, err := s.db.Query(`
		SELECT source_id, target_id, similarity
		FROM note_links
		WHERE source_id = ? OR target_id = ?
		ORDER BY similarity DESC
	`, noteID, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load links for note %d: %w", noteID, err)
	}
	defer func() { _ = rows.Close() }()

	var links []models.NoteLink
	for rows.Next() {
		var source, target int64
		var sim float64
		if err := rows.Scan(&source, &target, &sim); err != nil {
			return nil, err
		}
		other := target
		if target == noteID {
			other = source
		}
		links = append(links, models.NoteLink{ID: other, Similarity: sim})
	}
	return links, rows.Err()
}

// rowScanner abstracts sql.Row and sql.Rows for scanNote
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note     models.Note
		summary  sql.NullString
		tags     sql.NullString
		concepts sql.NullString
	)
	if err := row.Scan(&note.ID, &note.Title, &summary, &tags, &concepts, &note.CreatedAt); err != nil {
		return nil, err
	}
	if summary.Valid {
		note.Summary = summary.String
	}
	note.Tags = decodeStringList(tags)
	note.KeyConcepts = decodeStringList(concepts)
	return &note, nil
}

func encodeStringList(list []string) (sql.NullString, error) {
	if len(list) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
