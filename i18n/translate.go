// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"

	"golang.org/x/text/language"

	"codeberg.org/mfmt/mfmt/icu"
)

// Vars maps placeholder names to interpolation values.
type Vars map[string]any

// TagFunc renders the chunks enclosed by a rich-text tag. It is re-exported
// from package icu so that most callers only import i18n.
type TagFunc = icu.TagFunc

// NewUserError creates a new UserError.
func NewUserError(ctx context.Context, key string, kv ...any) *UserError {
	return &UserError{
		message: T(ctx, key, kv...),
		key:     key,
	}
}

// UserError is an error type whose message is a translated string.
// It is intended for errors that can be shown directly to the end user.
type UserError struct {
	message string
	key     string
}

// Error returns the translated error message.
func (e *UserError) Error() string {
	return e.message
}

// Key returns the message key the error was built from.
func (e *UserError) Key() string {
	return e.key
}

// T resolves a fully qualified, dot-delimited message key in the locale
// carried by ctx and formats it. If key-value pairs are provided, they are
// used as ICU interpolation values.
//
// If the key is not found in the matched locale, the base locale is tried;
// if it is missing there too, T returns the key unchanged, or visibly
// wrapped if strict mode is enabled.
func T(ctx context.Context, key string, kv ...any) string {
	return translate(ctx, "", key, v(kv...))
}

// Raw resolves a message key like [T] but returns the pattern text without
// any formatting. Use it to pass a message through to another renderer, for
// example a Markdown pipeline.
func Raw(ctx context.Context, key string) string {
	pattern, loc, found := resolve(ctx, key)
	if !found {
		return missing(loc, key)
	}

	return pattern
}

// Has reports whether key resolves to a message in the matched locale or
// the base locale.
func Has(ctx context.Context, key string) bool {
	_, _, found := resolve(ctx, key)

	return found
}

// N returns a Translator scoped to a namespace, a dot-delimited key prefix.
// An empty namespace addresses the whole catalog. The returned value is
// bound to ctx and is intended for request-scoped use:
//
//	t := i18n.N(ctx, "HomePage")
//	t.T("title")
func N(ctx context.Context, namespace string) Translator {
	return Translator{ctx: ctx, namespace: namespace}
}

// Translator is a namespace-scoped view over the loaded catalogs.
// The zero value resolves against the whole catalog with a nil context.
type Translator struct {
	ctx       context.Context
	namespace string
}

// T resolves key within the translator's namespace and formats it.
func (t Translator) T(key string, kv ...any) string {
	return translate(t.ctx, t.namespace, key, v(kv...))
}

// Rich is [Translator.T] for messages with rich-text tags. Tag functions are
// passed like any other value:
//
//	t.Rich("terms", "link", i18n.TagFunc(func(chunks string) string { ... }))
func (t Translator) Rich(key string, kv ...any) string {
	return translate(t.ctx, t.namespace, key, v(kv...))
}

// Raw returns the pattern for key within the namespace, uninterpreted.
func (t Translator) Raw(key string) string {
	return Raw(t.ctx, t.qualify(key))
}

// Has reports whether key resolves within the namespace.
func (t Translator) Has(key string) bool {
	return Has(t.ctx, t.qualify(key))
}

func (t Translator) qualify(key string) string {
	if t.namespace == "" {
		return key
	}

	return t.namespace + "." + key
}

// resolve looks up the pattern for a fully qualified key: first in the
// matched locale's tree, then in the base locale's.
func resolve(ctx context.Context, key string) (pattern string, loc language.Tag, found bool) {
	tree, matched := resolveLocale(TagFrom(ctx))

	if tree != nil {
		if pattern, ok := tree.Lookup(key); ok {
			return pattern, matched, true
		}
	}

	if base := baseTree(); base != nil {
		if pattern, ok := base.Lookup(key); ok {
			return pattern, matched, true
		}
	}

	return "", matched, false
}

// translate performs the underlying lookup and formatting.
func translate(ctx context.Context, namespace, key string, vars Vars) string {
	full := key
	if namespace != "" {
		full = namespace + "." + key
	}

	pattern, loc, found := resolve(ctx, full)
	if !found {
		return missing(loc, full)
	}

	return render(loc, full, pattern, vars)
}

// render compiles and formats pattern for loc. Formatting problems never
// escape to the caller: the raw pattern is returned, or a wrapped marker in
// strict mode, and the problem is logged.
func render(loc language.Tag, key, pattern string, vars Vars) string {
	msg, err := icu.Compile(pattern)
	if err != nil {
		if strictMissingKeys() {
			return "⟦" + pattern + "⟧"
		}

		Logger.Error().
			Err(err).
			Str("locale", loc.String()).
			Str("key", key).
			Msg("Invalid message pattern")

		return pattern
	}

	out, err := msg.Format(loc, icu.Values(vars))
	if err != nil {
		if strictMissingKeys() {
			return "⟦" + pattern + "⟧"
		}

		Logger.Error().
			Err(err).
			Str("locale", loc.String()).
			Str("key", key).
			Msg("Cannot format message")

		return pattern
	}

	return out
}

// missing applies the missing-key policy: the fully qualified key itself,
// wrapped and logged once per locale+key in strict mode.
func missing(loc language.Tag, key string) string {
	if strictMissingKeys() {
		logMissingOnce(strippedTagString(loc), key)

		return "⟦" + key + "⟧"
	}

	return key
}

// v builds Vars from alternating key, value pairs.
// Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
