// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache.
Keys are strings. The cache evicts the least recently used entry when it reaches capacity.
It backs the compiled message pattern cache in package icu.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// LRUCache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [NewLRUCache]; the zero value is not ready for use.
type LRUCache struct {
	size      int                      // Maximum capacity of the cache (number of entries)
	evictList *list.List               // A doubly-linked list to manage the eviction order
	items     map[string]*list.Element // Maps string keys to their corresponding linked-list elements
	lock      sync.RWMutex             // For thread-safe operations
}

// cacheEntry holds the key/value pair stored in each linked-list element.
type cacheEntry struct {
	key   string
	value any
}

// NewLRUCache creates a new cache with the specified maximum size.
//
// It returns an error if size is not a positive integer.
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	return &LRUCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}, nil
}

// Add adds or updates the value for key.
//
// If the key exists, it becomes the most recently used.
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *LRUCache) Add(key string, value any) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	// If the item already exists, move it to the front as "most recently used" and update its value.
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)

		if cacheEnt, ok := ent.Value.(*cacheEntry); ok {
			cacheEnt.value = value
		}

		return false
	}

	// Otherwise, create a new entry and place it at the front.
	c.items[key] = c.evictList.PushFront(&cacheEntry{
		key:   key,
		value: value,
	})

	// If we've exceeded our capacity, remove the oldest item from the back of the list.
	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the value for key and marks it as most recently used.
//
// The second result reports whether the key was found.
func (c *LRUCache) Get(key string) (any, bool) {
	// Lock for write since we will move the element to the front.
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}

	c.evictList.MoveToFront(ent)

	cacheEnt, ok := ent.Value.(*cacheEntry)
	if !ok {
		return nil, false
	}

	return cacheEnt.value, true
}

// Peek retrieves the value for key without modifying the LRU order.
//
// The second result reports whether the key was found.
func (c *LRUCache) Peek(key string) (any, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}

	cacheEnt, ok := ent.Value.(*cacheEntry)
	if !ok {
		return nil, false
	}

	return cacheEnt.value, true
}

// Remove deletes the entry associated with key from the cache.
//
// Remove reports whether the key was present and removed.
func (c *LRUCache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)

		return true
	}

	return false
}

// Keys returns a slice of all keys in the cache, from the oldest to the newest.
func (c *LRUCache) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	keys := make([]string, len(c.items))
	index := 0

	// The back of the list is the oldest entry.
	for ent := c.evictList.Back(); ent != nil; ent = ent.Prev() {
		if cacheEnt, ok := ent.Value.(*cacheEntry); ok {
			keys[index] = cacheEnt.key
			index++
		}
	}

	return keys
}

// Len returns the current number of items in the cache.
func (c *LRUCache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

// removeOldest removes the oldest item from both the linked list and the map.
func (c *LRUCache) removeOldest() {
	ent := c.evictList.Back()
	if ent != nil {
		c.removeElement(ent)
	}
}

// removeElement is a helper function that removes a specific list element
// from the eviction list and deletes it from the map.
func (c *LRUCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)

	if kv, ok := e.Value.(*cacheEntry); ok {
		delete(c.items, kv.key)
	}
}
