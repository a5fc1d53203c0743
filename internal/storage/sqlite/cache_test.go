// ABOUTME: Tests for the sharded vector cache
// ABOUTME: Copy semantics, eviction, and concurrent access across shards

package sqlite

import (
	"fmt"
	"sync"
	"testing"
)

func TestVectorCache_PutGet(t *testing.T) {
	cache := newVectorCache()

	cache.put(1, "model-a", []float32{1, 2, 3})

	got := cache.get(1, "model-a")
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("get() = %v, want [1 2 3]", got)
	}
	if cache.get(2, "model-a") != nil {
		t.Error("get() for absent note should be nil")
	}
	if cache.get(1, "model-b") != nil {
		t.Error("get() for absent model should be nil")
	}
}

func TestVectorCache_GetReturnsCopy(t *testing.T) {
	cache := newVectorCache()
	cache.put(1, "m", []float32{1, 2, 3})

	first := cache.get(1, "m")
	first[0] = 99

	second := cache.get(1, "m")
	if second[0] != 1 {
		t.Errorf("cached vector mutated through returned slice: %v", second)
	}
}

func TestVectorCache_PutCopiesInput(t *testing.T) {
	cache := newVectorCache()
	source := []float32{1, 2, 3}
	cache.put(1, "m", source)

	source[0] = 99
	if got := cache.get(1, "m"); got[0] != 1 {
		t.Errorf("cache aliased caller slice: %v", got)
	}
}

func TestVectorCache_Drop(t *testing.T) {
	cache := newVectorCache()
	cache.put(1, "m", []float32{1})
	cache.put(2, "m", []float32{2})

	cache.drop(1, "m")

	if cache.get(1, "m") != nil {
		t.Error("dropped key still cached")
	}
	if cache.get(2, "m") == nil {
		t.Error("drop evicted an unrelated key")
	}
}

func TestVectorCache_ConcurrentAccess(t *testing.T) {
	cache := newVectorCache()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := int64(i % 32)
				model := fmt.Sprintf("model-%d", g%3)
				cache.put(id, model, []float32{float32(i)})
				cache.get(id, model)
				if i%10 == 0 {
					cache.drop(id, model)
				}
			}
		}(g)
	}
	wg.Wait()
}
