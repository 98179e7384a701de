// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import (
	"strconv"
	"sync"
	"testing"
)

// TestNewLRUCache checks the creation of a new LRUCache with both valid and invalid sizes.
func TestNewLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := NewLRUCache(3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache == nil {
			t.Fatal("expected cache to be initialized")
		}

		// Immediately after creation, the cache should be empty.
		if cache.Len() != 0 {
			t.Errorf("expected cache length to be 0, got %d", cache.Len())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		t.Parallel()

		if _, err := NewLRUCache(0); err == nil {
			t.Fatal("expected an error for zero size")
		}

		if _, err := NewLRUCache(-1); err == nil {
			t.Fatal("expected an error for negative size")
		}
	})
}

// TestAddAndGet verifies insertion, retrieval, and recency updates.
func TestAddAndGet(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Add("a", 1)
	cache.Add("b", 2)

	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("expected to find a=1, got %v (found=%v)", v, ok)
	}

	// "b" is now the least recently used; adding "c" must evict it.
	if evicted := cache.Add("c", 3); !evicted {
		t.Error("expected an eviction when exceeding capacity")
	}

	if _, ok := cache.Get("b"); ok {
		t.Error("expected b to have been evicted")
	}

	if v, ok := cache.Get("c"); !ok || v != 3 {
		t.Errorf("expected to find c=3, got %v (found=%v)", v, ok)
	}
}

// TestPeekDoesNotPromote checks that Peek leaves the eviction order untouched.
func TestPeekDoesNotPromote(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Add("a", 1)
	cache.Add("b", 2)

	if v, ok := cache.Peek("a"); !ok || v != 1 {
		t.Fatalf("expected to peek a=1, got %v (found=%v)", v, ok)
	}

	// "a" was only peeked, so it is still the oldest entry and must be evicted.
	cache.Add("c", 3)

	if _, ok := cache.Peek("a"); ok {
		t.Error("expected a to have been evicted after peek")
	}
}

// TestRemoveAndKeys verifies explicit removal and key ordering.
func TestRemoveAndKeys(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	if !cache.Remove("b") {
		t.Error("expected Remove to report b as removed")
	}

	if cache.Remove("b") {
		t.Error("expected Remove to report b as already gone")
	}

	keys := cache.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("expected keys [a c] oldest to newest, got %v", keys)
	}
}

// TestConcurrentAccess hammers the cache from multiple goroutines.
func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)

		go func(seed int) {
			defer wg.Done()

			for i := range 200 {
				key := strconv.Itoa((seed + i) % 100)
				cache.Add(key, i)
				cache.Get(key)
				cache.Peek(key)
			}
		}(g)
	}

	wg.Wait()

	if cache.Len() > 64 {
		t.Errorf("cache exceeded its capacity: %d", cache.Len())
	}
}
