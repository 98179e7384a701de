// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog holds one locale's message tree: a nested mapping from keys
to ICU pattern strings, addressed by dot-delimited paths.

Trees are loaded from YAML, JSON, TOML, or gettext .po files, optionally
zstd-compressed, via [LoadFile]:

	tree, err := catalog.LoadFile(os.DirFS("locales"), "en.yaml")
	pattern, ok := tree.Lookup("HomePage.title")

A namespace is a subtree:

	home, ok := tree.Namespace("HomePage")
	pattern, ok = home.Lookup("title")

Trees are immutable after construction and safe for concurrent use.
*/
package catalog
