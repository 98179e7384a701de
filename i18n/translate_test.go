// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	config "codeberg.org/mfmt/mfmt/configs"
)

// ctxFor returns a context carrying the given locale.
func ctxFor(locale string) context.Context {
	return WithTag(context.Background(), language.Make(locale))
}

func TestT(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		kv     []any
		want   string
	}{
		{
			name:   "Plain message",
			locale: "en",
			key:    "HomePage.title",
			want:   "Artworks",
		},
		{
			name:   "Interpolation",
			locale: "en",
			key:    "HomePage.greeting",
			kv:     []any{"name", "mima"},
			want:   "Hello, mima!",
		},
		{
			name:   "Plural one",
			locale: "en",
			key:    "HomePage.inbox",
			kv:     []any{"count", 1},
			want:   "You have 1 message",
		},
		{
			name:   "Plural other with grouping",
			locale: "en",
			key:    "HomePage.inbox",
			kv:     []any{"count", 1234},
			want:   "You have 1,234 messages",
		},
		{
			name:   "German catalog",
			locale: "de",
			key:    "HomePage.inbox",
			kv:     []any{"count", 2},
			want:   "Du hast 2 Nachrichten",
		},
		{
			name:   "Russian few",
			locale: "ru",
			key:    "HomePage.inbox",
			kv:     []any{"count", 3},
			want:   "У вас 3 сообщения",
		},
		{
			name:   "Russian many",
			locale: "ru",
			key:    "HomePage.inbox",
			kv:     []any{"count", 11},
			want:   "У вас 11 сообщений",
		},
		{
			name:   "Select",
			locale: "en",
			key:    "HomePage.replied",
			kv:     []any{"g", "female"},
			want:   "She replied",
		},
		{
			name:   "Ordinal",
			locale: "en",
			key:    "HomePage.rank",
			kv:     []any{"n", 3},
			want:   "3rd place",
		},
		{
			name:   "Date style",
			locale: "en",
			key:    "HomePage.updated",
			kv:     []any{"d", time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)},
			want:   "Updated Mar 9, 2025",
		},
		{
			name:   "Regional variant",
			locale: "pt-BR",
			key:    "HomePage.title",
			want:   "Obras",
		},
		{
			name:   "Fallback to base locale",
			locale: "de",
			key:    "Errors.notFound",
			want:   "Page not found",
		},
		{
			name:   "Missing key passes through",
			locale: "en",
			key:    "HomePage.nope",
			want:   "HomePage.nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := T(ctxFor(tt.locale), tt.key, tt.kv...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslatorNamespace(t *testing.T) {
	tr := N(ctxFor("en"), "HomePage")

	assert.Equal(t, "Hello, sena!", tr.T("greeting", "name", "sena"))
	assert.True(t, tr.Has("title"))
	assert.False(t, tr.Has("Errors.notFound"))

	// Raw returns the pattern uninterpreted.
	assert.Equal(t, "Hello, {name}!", tr.Raw("greeting"))

	// An empty namespace addresses the whole catalog.
	whole := N(ctxFor("en"), "")
	assert.Equal(t, "Page not found", whole.T("Errors.notFound"))
}

func TestTranslatorRich(t *testing.T) {
	tr := N(ctxFor("en"), "HomePage")

	got := tr.Rich("terms", "link", TagFunc(func(chunks string) string {
		return `<a href="/terms">` + chunks + `</a>`
	}))

	assert.Equal(t, `I agree to the <a href="/terms">terms of service</a>`, got)
}

func TestMissingKeyStrictMode(t *testing.T) {
	config.Global.Internationalization.StrictMissingKeys = true
	defer func() { config.Global.Internationalization.StrictMissingKeys = false }()

	got := T(ctxFor("en"), "HomePage.nope")
	assert.Equal(t, "⟦HomePage.nope⟧", got)
}

func TestRenderFailurePassesPatternThrough(t *testing.T) {
	// The inbox pattern needs a count value. With none supplied, the raw
	// pattern is returned instead of an error reaching the caller.
	got := T(ctxFor("en"), "HomePage.inbox")

	assert.True(t, strings.HasPrefix(got, "{count, plural,"), "got %q", got)
}

func TestHas(t *testing.T) {
	ctx := ctxFor("de")

	assert.True(t, Has(ctx, "HomePage.inbox"))

	// Present only in the base locale, still resolvable.
	assert.True(t, Has(ctx, "Errors.rateLimited"))

	assert.False(t, Has(ctx, "Errors.nope"))
}

func TestUserError(t *testing.T) {
	err := NewUserError(ctxFor("en"), "Errors.rateLimited", "n", 30)

	require.Error(t, err)
	assert.Equal(t, "Try again in 30 seconds", err.Error())
	assert.Equal(t, "Errors.rateLimited", err.Key())

	var userErr *UserError

	assert.True(t, errors.As(err, &userErr))
}
