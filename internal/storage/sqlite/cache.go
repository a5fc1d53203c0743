// ABOUTME: Sharded in-memory cache for embedding vectors
// ABOUTME: Per-shard RWMutex keyed by (note_id, model_id), no global lock
package sqlite

import (
	"hash/fnv"
	"strconv"
	"sync"
)

const cacheShards = 16

type cacheKey struct {
	noteID  int64
	modelID string
}

type cacheShard struct {
	mu      sync.RWMutex
	vectors map[cacheKey][]float32
}

// vectorCache caches vectors across calls. Lookups for unrelated keys never
// contend on the same lock: keys are spread over fixed shards, each with its
// own read-write mutex.
type vectorCache struct {
	shards [cacheShards]*cacheShard
}

func newVectorCache() *vectorCache {
	c := &vectorCache{}
	for i := range c.shards {
		c.shards[i] = &cacheShard{vectors: make(map[cacheKey][]float32)}
	}
	return c
}

func (c *vectorCache) shard(key cacheKey) *cacheShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.modelID))
	_, _ = h.Write([]byte(strconv.FormatInt(key.noteID, 10)))
	return c.shards[h.Sum32()%cacheShards]
}

// get returns a copy of the cached vector, or nil if absent. Returning a
// copy keeps callers from mutating cached state.
func (c *vectorCache) get(noteID int64, modelID string) []float32 {
	key := cacheKey{noteID: noteID, modelID: modelID}
	s := c.shard(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.vectors[key]
	if !ok {
		return nil
	}
	vector := make([]float32, len(cached))
	copy(vector, cached)
	return vector
}

// put stores a copy of the vector; the whole slice is swapped under the
// shard lock so readers never observe a partially written vector.
func (c *vectorCache) put(noteID int64, modelID string, vector []float32) {
	key := cacheKey{noteID: noteID, modelID: modelID}
	s := c.shard(key)

	stored := make([]float32, len(vector))
	copy(stored, vector)

	s.mu.Lock()
	s.vectors[key] = stored
	s.mu.Unlock()
}

// drop evicts a single key.
func (c *vectorCache) drop(noteID int64, modelID string) {
	key := cacheKey{noteID: noteID, modelID: modelID}
	s := c.shard(key)

	s.mu.Lock()
	delete(s.vectors, key)
	s.mu.Unlock()
}
