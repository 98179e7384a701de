// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/mfmt/mfmt/catalog"
)

var (
	// treesByTag maps canonical BCP 47 tags, for example
	// "en", "ja", "pt-BR", to their loaded message trees.
	treesByTag map[string]*catalog.Tree

	// supportedTags holds the list of BCP 47 tags for which a catalog was successfully loaded.
	supportedTags []language.Tag

	// matcher is a private [language.Matcher] derived from the loaded catalogs.
	matcher language.Matcher
)

// Setup initialises package i18n by loading message catalogs from fsys
// and constructing a language matcher.
//
// It scans dir for catalog files named <locale>.<format>, where format is
// one of the extensions package catalog understands. The <locale> filename
// part may use hyphens or underscores, for example "pt-BR.yaml" or
// "pt_BR.yaml", and is normalised to a canonical BCP 47 language tag for
// matching. Files for the same locale in multiple formats are rejected.
// The base locale, specified by BaseLocale, is always included in the
// matcher and acts as the default fallback.
//
// Catalogs are loaded concurrently. Calling Setup again replaces the
// previously loaded catalogs and matcher.
func Setup(fsys fs.FS, dir string) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var (
		mu       sync.Mutex
		g        errgroup.Group
		newTrees = make(map[string]*catalog.Tree)
		tagsList []language.Tag
	)

	for _, entry := range entries {
		if entry.IsDir() || !catalog.IsCatalogFile(entry.Name()) {
			continue
		}

		fileName := entry.Name()

		localeName, _, _ := strings.Cut(fileName, ".")

		// Accept both underscore and hyphen.
		// Convert to a canonical BCP 47 string for matching and display.
		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")
			continue
		}

		canonical := t.String()

		g.Go(func() error {
			tree, err := catalog.LoadFile(fsys, path.Join(dir, fileName))
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()

			if _, dup := newTrees[canonical]; dup {
				return fmt.Errorf("duplicate catalog for locale %s: %s", canonical, fileName)
			}

			newTrees[canonical] = tree
			tagsList = append(tagsList, t)

			Logger.Info().
				Str("locale", canonical).
				Str("file", fileName).
				Int("keys", len(tree.Flatten())).
				Msg("Loaded locale")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Build a private matcher from the loaded languages.
	// baseTag is first to make it the default fallback for matching.
	all := make([]language.Tag, 0, len(tagsList)+1)

	all = append(all, baseTag)

	// Sort loaded tags by their canonical string.
	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	for _, t := range tagsList {
		if t == baseTag {
			continue
		}

		all = append(all, t)
	}

	treesByTag = newTrees
	matcher = language.NewMatcher(all)
	supportedTags = all

	return nil
}

// resolveLocale matches t to one of the loaded locales and returns the
// corresponding message tree and the matched tag.
// If no matcher is built or no catalog is found, it returns nil and baseTag.
func resolveLocale(t language.Tag) (*catalog.Tree, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	matched, _ := language.MatchStrings(matcher, t.String())

	return treesByTag[matched.String()], matched
}

// baseTree returns the catalog of the base locale, or nil when absent.
func baseTree() *catalog.Tree {
	return treesByTag[baseTag.String()]
}
