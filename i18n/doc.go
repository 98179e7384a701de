// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n resolves namespace-scoped message keys against per-locale
catalogs and formats them with ICU MessageFormat semantics.

# Quick start

Load catalogs once at startup, then translate with the locale carried in the
request context:

	if err := i18n.Setup(os.DirFS("."), "locales"); err != nil { ... }

	i18n.T(ctx, "HomePage.title")
	i18n.T(ctx, "Inbox.unread", "count", n)

	t := i18n.N(ctx, "HomePage")
	t.T("title")
	t.Rich("terms", "link", i18n.TagFunc(func(chunks string) string {
		return `<a href="/terms">` + chunks + `</a>`
	}))
	t.Raw("markdown")

Catalog files are named <locale>.<format> under the given directory, for
example "en.yaml", "pt-BR.json", "de.toml", or "fr.po", optionally with a
.zst suffix. The locale part may use hyphens or underscores and is
normalised to a canonical BCP 47 tag for matching. The base locale, "en",
is always the default fallback.

# Missing translations

A key absent from the matched locale is looked up in the base locale. If it
is missing there too, the fully qualified key is returned unchanged. When
StrictMissingKeys is enabled, missing lookups are logged once per
locale+key and the returned text is visibly wrapped as "⟦...⟧".

# Formatting

Message patterns use ICU syntax as implemented by package icu: named
placeholders, plural, select, selectordinal, and rich-text tags. Provide
substitutions as alternating key-value pairs:

	i18n.T(ctx, "Cart.summary", "count", 3, "name", user.Name)

Numbers are rendered with the matched locale's digit conventions.
*/
package i18n
