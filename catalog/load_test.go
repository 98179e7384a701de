// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `HomePage:
  title: "Welcome!"
  items: "{count, plural, one {# item} other {# items}}"
generic: "Something went wrong"
`

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yaml": &fstest.MapFile{Data: []byte(yamlCatalog)},
	}

	tree, err := LoadFile(fsys, "en.yaml")
	require.NoError(t, err)

	got, ok := tree.Lookup("HomePage.title")
	assert.True(t, ok)
	assert.Equal(t, "Welcome!", got)
	assert.True(t, tree.Has("generic"))
}

func TestLoadFileJSON(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(
			`{"HomePage": {"title": "Welcome!", "nav": {"about": "About us"}}}`,
		)},
	}

	tree, err := LoadFile(fsys, "en.json")
	require.NoError(t, err)

	got, ok := tree.Lookup("HomePage.nav.about")
	assert.True(t, ok)
	assert.Equal(t, "About us", got)
}

func TestLoadFileTOML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"de.toml": &fstest.MapFile{Data: []byte(
			"[HomePage]\ntitle = \"Willkommen!\"\n",
		)},
	}

	tree, err := LoadFile(fsys, "de.toml")
	require.NoError(t, err)

	got, ok := tree.Lookup("HomePage.title")
	assert.True(t, ok)
	assert.Equal(t, "Willkommen!", got)
}

func TestLoadFilePo(t *testing.T) {
	t.Parallel()

	po := `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "HomePage.title"
msgstr "Bienvenue !"

msgid "HomePage.untranslated"
msgstr ""
`

	fsys := fstest.MapFS{
		"fr.po": &fstest.MapFile{Data: []byte(po)},
	}

	tree, err := LoadFile(fsys, "fr.po")
	require.NoError(t, err)

	got, ok := tree.Lookup("HomePage.title")
	assert.True(t, ok)
	assert.Equal(t, "Bienvenue !", got)

	// Untranslated entries are skipped so lookups can fall back.
	assert.False(t, tree.Has("HomePage.untranslated"))
}

func TestLoadFileZstd(t *testing.T) {
	t.Parallel()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	compressed := enc.EncodeAll([]byte(yamlCatalog), nil)
	require.NoError(t, enc.Close())

	fsys := fstest.MapFS{
		"en.yaml.zst": &fstest.MapFile{Data: compressed},
	}

	tree, err := LoadFile(fsys, "en.yaml.zst")
	require.NoError(t, err)
	assert.True(t, tree.Has("HomePage.items"))
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.ini":       &fstest.MapFile{Data: []byte("a=b")},
		"bad.json":     &fstest.MapFile{Data: []byte(`{"truncated":`)},
		"array.json":   &fstest.MapFile{Data: []byte(`["not", "an", "object"]`)},
		"badleaf.yaml": &fstest.MapFile{Data: []byte("n: 42\n")},
	}

	_, err := LoadFile(fsys, "missing.yaml")
	require.Error(t, err)

	_, err = LoadFile(fsys, "en.ini")
	require.ErrorIs(t, err, errUnsupportedFormat)

	_, err = LoadFile(fsys, "bad.json")
	require.ErrorIs(t, err, errInvalidJSON)

	_, err = LoadFile(fsys, "array.json")
	require.ErrorIs(t, err, errNotAnObject)

	_, err = LoadFile(fsys, "badleaf.yaml")
	require.Error(t, err)
}

func TestIsCatalogFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCatalogFile("en.yaml"))
	assert.True(t, IsCatalogFile("pt-BR.yml"))
	assert.True(t, IsCatalogFile("ja.json"))
	assert.True(t, IsCatalogFile("de.toml"))
	assert.True(t, IsCatalogFile("fr.po"))
	assert.True(t, IsCatalogFile("en.yaml.zst"))
	assert.False(t, IsCatalogFile("README.md"))
	assert.False(t, IsCatalogFile("archive.zst"))
	assert.False(t, IsCatalogFile("noext"))
}
