// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/leonelquinteros/gotext"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

var (
	errUnsupportedFormat = errors.New("unsupported catalog format")
	errInvalidJSON       = errors.New("invalid JSON document")
	errNotAnObject       = errors.New("catalog root must be a mapping")
)

// Reusable decoder for block operations. A nil reader lets us use DecodeAll
// without streams.
var zstdDec = func() *zstd.Decoder {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic(err)
	}

	return dec
}()

// IsCatalogFile reports whether name looks like a loadable catalog file,
// going by its extension. A trailing ".zst" is ignored.
func IsCatalogFile(name string) bool {
	name = strings.TrimSuffix(name, ".zst")

	switch strings.ToLower(fileExt(name)) {
	case ".yaml", ".yml", ".json", ".toml", ".po":
		return true
	default:
		return false
	}
}

// LoadFile reads and parses one catalog file from fsys. The format is chosen
// by extension: .yaml/.yml, .json, .toml, or .po, each optionally with a
// .zst suffix for transparent zstd decompression.
func LoadFile(fsys fs.FS, name string) (*Tree, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", name, err)
	}

	format := name
	if strings.HasSuffix(format, ".zst") {
		data, err = zstdDec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress catalog file %s: %w", name, err)
		}

		format = strings.TrimSuffix(format, ".zst")
	}

	tree, err := parse(data, strings.ToLower(fileExt(format)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", name, err)
	}

	return tree, nil
}

func parse(data []byte, ext string) (*Tree, error) {
	switch ext {
	case ".yaml", ".yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}

		return New(m)
	case ".json":
		if !gjson.ValidBytes(data) {
			return nil, errInvalidJSON
		}

		m, ok := gjson.ParseBytes(data).Value().(map[string]any)
		if !ok {
			return nil, errNotAnObject
		}

		return New(m)
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}

		return New(m)
	case ".po":
		return parsePo(data)
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
}

// parsePo builds a tree from a gettext catalog. Msgids become dot-delimited
// paths; untranslated entries are skipped so that lookup falls back to the
// base locale.
func parsePo(data []byte) (*Tree, error) {
	po := gotext.NewPo()
	po.Parse(data)

	tree := &Tree{root: make(map[string]any)}

	for msgid, translation := range po.GetDomain().GetTranslations() {
		// Read the raw msgstr. Translation.Get falls back to the msgid for
		// untranslated entries, which would mask them as translated.
		text := translation.Trs[0]
		if msgid == "" || text == "" {
			continue
		}

		if err := tree.insert(msgid, text); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// fileExt returns the extension of name including the dot, or "".
func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}

	return ""
}
