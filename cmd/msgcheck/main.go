// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command msgcheck loads every catalog in a locales directory, parses each
// message as an ICU pattern, and compares placeholder usage against the
// base locale. It exits non-zero when any catalog has problems, which makes
// it suitable for CI.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"codeberg.org/mfmt/mfmt/catalog"
	"codeberg.org/mfmt/mfmt/icu"
)

func main() {
	dir := flag.String("dir", "./locales", "directory containing <locale>.<format> catalog files")
	base := flag.String("base", "en", "base locale to compare placeholders against")
	flag.Parse()

	trees, err := loadAll(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(trees) == 0 {
		fmt.Fprintf(os.Stderr, "no catalog files found in %s\n", *dir)
		os.Exit(1)
	}

	problems := checkAll(trees, *base)
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}

	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) found\n", len(problems))
		os.Exit(1)
	}
}

// loadAll loads every catalog file in dir, keyed by the locale part of the
// filename.
func loadAll(dir string) (map[string]*catalog.Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	trees := make(map[string]*catalog.Tree)

	for _, entry := range entries {
		if entry.IsDir() || !catalog.IsCatalogFile(entry.Name()) {
			continue
		}

		locale, _, _ := strings.Cut(entry.Name(), ".")

		tree, err := catalog.LoadFile(os.DirFS(dir), entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		if _, dup := trees[locale]; dup {
			return nil, fmt.Errorf("duplicate catalog for locale %s", locale)
		}

		trees[locale] = tree
	}

	return trees, nil
}

// checkAll validates every message in every catalog and returns a sorted
// list of human-readable problems.
func checkAll(trees map[string]*catalog.Tree, base string) []string {
	var problems []string

	// Parse the base catalog first so placeholder comparisons have a
	// reference even when it has syntax errors of its own.
	baseArgs := map[string][]string{}

	if baseTree, ok := trees[base]; ok {
		for key, pattern := range baseTree.Flatten() {
			msg, err := icu.Parse(pattern)
			if err != nil {
				continue
			}

			baseArgs[key] = msg.Args()
		}
	} else {
		problems = append(problems, fmt.Sprintf("base locale %s has no catalog", base))
	}

	locales := make([]string, 0, len(trees))
	for locale := range trees {
		locales = append(locales, locale)
	}

	sort.Strings(locales)

	for _, locale := range locales {
		for key, pattern := range trees[locale].Flatten() {
			msg, err := icu.Parse(pattern)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %s: %v", locale, key, err))

				continue
			}

			if locale == base {
				continue
			}

			want, ok := baseArgs[key]
			if !ok {
				problems = append(problems, fmt.Sprintf("%s: %s: key not present in base locale %s", locale, key, base))

				continue
			}

			for _, arg := range msg.Args() {
				if !slices.Contains(want, arg) {
					problems = append(problems,
						fmt.Sprintf("%s: %s: placeholder {%s} not used by base locale %s", locale, key, arg, base))
				}
			}
		}
	}

	sort.Strings(problems)

	return problems
}
