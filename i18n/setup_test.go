// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	if err := Setup(os.DirFS("testdata"), "."); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestLanguages(t *testing.T) {
	var got []string
	for _, tag := range Languages() {
		got = append(got, tag.String())
	}

	assert.Equal(t, []string{"de", "en", "pt-BR", "ru"}, got)
}

func TestSetupRejectsDuplicateLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml": &fstest.MapFile{Data: []byte("a: b\n")},
		"en.json": &fstest.MapFile{Data: []byte(`{"a": "b"}`)},
	}

	err := Setup(fsys, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate catalog")
}

func TestSetupSkipsNonCatalogFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"en.yaml":   &fstest.MapFile{Data: []byte("a: b\n")},
		"README.md": &fstest.MapFile{Data: []byte("notes\n")},
		"???.yaml":  &fstest.MapFile{Data: []byte("a: b\n")},
	}

	require.NoError(t, Setup(fsys, "."))
	assert.Len(t, Languages(), 1)

	// Restore the catalogs the remaining tests rely on.
	require.NoError(t, Setup(os.DirFS("testdata"), "."))
}

func TestResolveLocaleFallsBackToBase(t *testing.T) {
	tree, matched := resolveLocale(language.Make("ja"))

	assert.Equal(t, baseTag, matched)
	assert.Same(t, baseTree(), tree)
}
