// ABOUTME: Unified Storage layer that wraps the note and vector stores
// ABOUTME: Single handle passed to the engine, CLI, and MCP server
package sqlite

import (
	"fmt"
)

// Storage bundles the SQLite-backed stores behind one handle
type Storage struct {
	db      *DB
	notes   *NoteStore
	vectors *VectorStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Storage{
		db:      db,
		notes:   NewNoteStore(db),
		vectors: NewVectorStore(db),
	}, nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &Storage{
		db:      db,
		notes:   NewNoteStore(db),
		vectors: NewVectorStore(db),
	}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Notes returns the note metadata store
func (s *Storage) Notes() *NoteStore {
	return s.notes
}

// Vectors returns the vector store
func (s *Storage) Vectors() *VectorStore {
	return s.vectors
}
