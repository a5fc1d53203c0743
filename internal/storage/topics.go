// ABOUTME: Append-only topic corpus stores for standalone topic search
// ABOUTME: Charm KV backend for cloud sync plus an in-memory corpus
package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/noteweave/noteweave/internal/charm"
	"github.com/noteweave/noteweave/internal/models"
)

// TopicCorpus is an append-only collection of topic entries. Entries are
// immutable once appended; only the corpus grows.
type TopicCorpus interface {
	// Append adds a topic entry, assigning an ID if one is missing.
	Append(entry *models.TopicEntry) error
	// All returns every entry in stable append order.
	All() ([]models.TopicEntry, error)
}

// CharmCorpus stores topic entries as JSON in Charm KV so a corpus follows
// the user across machines.
type CharmCorpus struct {
	client *charm.Client
}

// NewCharmCorpus creates a corpus over an existing charm client
func NewCharmCorpus(client *charm.Client) *CharmCorpus {
	return &CharmCorpus{client: client}
}

// Append stores a topic entry under the topic key prefix
func (c *CharmCorpus) Append(entry *models.TopicEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("topic title is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return c.client.SetJSON(charm.TopicKey(entry.ID), entry)
}

// All loads every stored topic entry, ordered by creation time then ID so
// iteration order is deterministic across machines.
func (c *CharmCorpus) All() ([]models.TopicEntry, error) {
	keys, err := c.client.ListKeys(charm.TopicPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic keys: %w", err)
	}

	entries := make([]models.TopicEntry, 0, len(keys))
	for _, key := range keys {
		var entry models.TopicEntry
		if err := c.client.GetJSON(key, &entry); err != nil {
			// Skip entries that fail to load; the corpus is advisory.
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// MemoryCorpus is a slice-backed corpus for tests and single-run usage
type MemoryCorpus struct {
	mu      sync.RWMutex
	entries []models.TopicEntry
}

// NewMemoryCorpus creates an empty in-memory corpus
func NewMemoryCorpus() *MemoryCorpus {
	return &MemoryCorpus{}
}

// Append adds an entry in insertion order
func (c *MemoryCorpus) Append(entry *models.TopicEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("topic title is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, *entry)
	return nil
}

// All returns a copy of the entries in append order
func (c *MemoryCorpus) All() ([]models.TopicEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.TopicEntry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}
