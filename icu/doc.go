// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package icu parses and formats ICU MessageFormat patterns.

A pattern is plain text interleaved with arguments in curly braces and
rich-text tags in angle brackets:

	Hello, {name}!
	{count, plural, one {# file} other {# files}}
	{pos, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}
	{gender, select, female {She} male {He} other {They}} replied.
	Please read the <guidelines>community guidelines</guidelines>.

# Parsing and formatting

Use [Compile] in steady-state code; it parses through a bounded LRU cache so
that repeated formatting of the same pattern does not re-parse it. [Parse]
always parses from scratch and is intended for one-off validation, for
example in catalog linting.

Formatting takes a locale tag and a value map:

	msg, err := icu.Compile("{count, plural, one {# item} other {# items}}")
	out, err := msg.Format(language.English, icu.Values{"count": 3})
	// out == "3 items"

Plural and selectordinal branches are chosen with the CLDR cardinal and
ordinal rules from golang.org/x/text/feature/plural. Numbers, including the
'#' placeholder, are rendered with the locale's digit grouping and decimal
separator via golang.org/x/text/message.

# Rich-text tags

Tags are substituted through functions supplied in the value map:

	msg, _ := icu.Compile("Visit <link>our website</link> for details.")
	out, _ := msg.Format(language.English, icu.Values{
		"link": icu.TagFunc(func(chunks string) string {
			return `<a href="/about">` + chunks + `</a>`
		}),
	})

A tag with no corresponding function is a formatting error.

# Escaping

ICU apostrophe quoting applies: '' is a literal apostrophe, and an
apostrophe immediately before one of '{', '}', '#', or '<' opens a quoted
span that runs to the next single apostrophe, for example:

	It''s '{'not'}' an argument.
*/
package icu
