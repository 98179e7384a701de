// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	errEmptyKey  = errors.New("empty key segment")
	errBadKey    = errors.New("message keys must be non-empty and must not contain dots")
	errBadNode   = errors.New("node must be a string or a nested mapping")
	errLeafClash = errors.New("key is used both as a message and as a namespace")
)

// Tree is one locale's message catalog. Leaves are ICU pattern strings;
// inner nodes are nested mappings.
type Tree struct {
	root map[string]any
}

// New builds a Tree from a decoded mapping, validating the message tree
// invariants: keys are non-empty, leaf values are strings, and inner nodes
// are mappings.
func New(m map[string]any) (*Tree, error) {
	root, err := normalize(m, "")
	if err != nil {
		return nil, err
	}

	return &Tree{root: root}, nil
}

// normalize deep-copies src, coercing mapping types produced by the various
// decoders and validating each node. path names the current position for
// error messages.
func normalize(src map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(src))

	for key, value := range src {
		if key == "" || strings.Contains(key, ".") {
			return nil, fmt.Errorf("%w at %q", errBadKey, path)
		}

		childPath := key
		if path != "" {
			childPath = path + "." + key
		}

		switch v := value.(type) {
		case string:
			out[key] = v
		case map[string]any:
			child, err := normalize(v, childPath)
			if err != nil {
				return nil, err
			}

			out[key] = child
		case map[any]any:
			converted := make(map[string]any, len(v))

			for ck, cv := range v {
				s, ok := ck.(string)
				if !ok {
					return nil, fmt.Errorf("%w at %q", errBadNode, childPath)
				}

				converted[s] = cv
			}

			child, err := normalize(converted, childPath)
			if err != nil {
				return nil, err
			}

			out[key] = child
		default:
			return nil, fmt.Errorf("%w at %q", errBadNode, childPath)
		}
	}

	return out, nil
}

// Lookup resolves a dot-delimited path to a pattern string. The second
// result reports whether the path names a leaf.
func (t *Tree) Lookup(path string) (string, bool) {
	if t == nil || path == "" {
		return "", false
	}

	node := any(t.root)

	for part := range strings.SplitSeq(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}

		node, ok = m[part]
		if !ok {
			return "", false
		}
	}

	s, ok := node.(string)

	return s, ok
}

// Namespace returns the subtree rooted at the dot-delimited path. An empty
// path returns the tree itself. The second result reports whether the path
// names a subtree.
func (t *Tree) Namespace(path string) (*Tree, bool) {
	if t == nil {
		return nil, false
	}

	if path == "" {
		return t, true
	}

	node := any(t.root)

	for part := range strings.SplitSeq(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}

		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	m, ok := node.(map[string]any)
	if !ok {
		return nil, false
	}

	return &Tree{root: m}, true
}

// Has reports whether the dot-delimited path names a leaf pattern.
func (t *Tree) Has(path string) bool {
	_, ok := t.Lookup(path)

	return ok
}

// Flatten returns all leaves keyed by their dot-delimited paths.
func (t *Tree) Flatten() map[string]string {
	out := make(map[string]string)

	if t != nil {
		flattenInto(out, t.root, "")
	}

	return out
}

// Keys returns the sorted dot-delimited paths of all leaves.
func (t *Tree) Keys() []string {
	flat := t.Flatten()

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func flattenInto(out map[string]string, m map[string]any, prefix string) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			out[path] = v
		case map[string]any:
			flattenInto(out, v, path)
		}
	}
}

// insert adds a leaf at a dot-delimited path, creating intermediate nodes.
// It is used when building trees from flat formats such as .po files.
func (t *Tree) insert(path, pattern string) error {
	parts := strings.Split(path, ".")

	node := t.root
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("%w in %q", errEmptyKey, path)
		}

		if i == len(parts)-1 {
			if _, exists := node[part]; exists {
				return fmt.Errorf("%w: %q", errLeafClash, path)
			}

			node[part] = pattern

			return nil
		}

		child, exists := node[part]
		if !exists {
			next := make(map[string]any)
			node[part] = next
			node = next

			continue
		}

		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q", errLeafClash, path)
		}

		node = next
	}

	return nil
}
