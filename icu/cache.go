// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"codeberg.org/mfmt/mfmt/core/lrucache"
)

// compiledCacheSize bounds the compiled pattern cache. A catalog rarely has
// more than a few thousand distinct patterns in active use.
const compiledCacheSize = 4096

var compiled = func() *lrucache.LRUCache {
	c, err := lrucache.NewLRUCache(compiledCacheSize)
	if err != nil {
		panic(err)
	}

	return c
}()

// Compile returns the parsed form of pattern, parsing it on first use and
// serving subsequent calls from a bounded LRU cache. Parse errors are not
// cached; invalid patterns should not reach steady-state formatting paths.
func Compile(pattern string) (*Message, error) {
	if v, ok := compiled.Get(pattern); ok {
		if m, ok := v.(*Message); ok {
			return m, nil
		}
	}

	m, err := Parse(pattern)
	if err != nil {
		return nil, err
	}

	compiled.Add(pattern, m)

	return m, nil
}
