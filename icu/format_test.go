// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func format(t *testing.T, loc language.Tag, pattern string, values Values) string {
	t.Helper()

	msg, err := Parse(pattern)
	require.NoError(t, err)

	out, err := msg.Format(loc, values)
	require.NoError(t, err)

	return out
}

func TestFormatInterpolation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello, Ada!",
		format(t, language.English, "Hello, {name}!", Values{"name": "Ada"}))

	assert.Equal(t, "5 of 9",
		format(t, language.English, "{a} of {b}", Values{"a": 5, "b": 9}))

	assert.Equal(t, "flag is true",
		format(t, language.English, "flag is {flag}", Values{"flag": true}))
}

func TestFormatEscaping(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "It's {not} an argument",
		format(t, language.English, "It''s '{'not'}' an argument", nil))

	assert.Equal(t, "plain 'quotes' stay",
		format(t, language.English, "plain 'quotes' stay", nil))

	// A quoted '#' inside a plural branch is literal.
	assert.Equal(t, "# 3",
		format(t, language.English, "{n, plural, other {'#' #}}", Values{"n": 3}))
}

func TestFormatPlural(t *testing.T) {
	t.Parallel()

	const pattern = "{count, plural, one {# item} other {# items}}"

	assert.Equal(t, "1 item", format(t, language.English, pattern, Values{"count": 1}))
	assert.Equal(t, "2 items", format(t, language.English, pattern, Values{"count": 2}))
	assert.Equal(t, "0 items", format(t, language.English, pattern, Values{"count": 0}))
}

func TestFormatPluralRussianCategories(t *testing.T) {
	t.Parallel()

	const pattern = "{n, plural, one {# файл} few {# файла} many {# файлов} other {# файла}}"

	assert.Equal(t, "1 файл", format(t, language.Russian, pattern, Values{"n": 1}))
	assert.Equal(t, "2 файла", format(t, language.Russian, pattern, Values{"n": 2}))
	assert.Equal(t, "5 файлов", format(t, language.Russian, pattern, Values{"n": 5}))
	assert.Equal(t, "21 файл", format(t, language.Russian, pattern, Values{"n": 21}))
}

func TestFormatPluralOffsetAndExact(t *testing.T) {
	t.Parallel()

	const pattern = "{n, plural, offset:1 =0 {nobody} =1 {just you} one {you and # other} other {you and # others}}"

	assert.Equal(t, "nobody", format(t, language.English, pattern, Values{"n": 0}))
	assert.Equal(t, "just you", format(t, language.English, pattern, Values{"n": 1}))
	assert.Equal(t, "you and 1 other", format(t, language.English, pattern, Values{"n": 2}))
	assert.Equal(t, "you and 4 others", format(t, language.English, pattern, Values{"n": 5}))
}

func TestFormatSelectOrdinal(t *testing.T) {
	t.Parallel()

	const pattern = "{pos, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}"

	assert.Equal(t, "1st", format(t, language.English, pattern, Values{"pos": 1}))
	assert.Equal(t, "2nd", format(t, language.English, pattern, Values{"pos": 2}))
	assert.Equal(t, "3rd", format(t, language.English, pattern, Values{"pos": 3}))
	assert.Equal(t, "4th", format(t, language.English, pattern, Values{"pos": 4}))
	assert.Equal(t, "11th", format(t, language.English, pattern, Values{"pos": 11}))
	assert.Equal(t, "21st", format(t, language.English, pattern, Values{"pos": 21}))
}

func TestFormatSelect(t *testing.T) {
	t.Parallel()

	const pattern = "{gender, select, female {She} male {He} other {They}} replied."

	assert.Equal(t, "She replied.", format(t, language.English, pattern, Values{"gender": "female"}))
	assert.Equal(t, "He replied.", format(t, language.English, pattern, Values{"gender": "male"}))
	assert.Equal(t, "They replied.", format(t, language.English, pattern, Values{"gender": "diverse"}))
}

func TestFormatNestedSelectKeepsPound(t *testing.T) {
	t.Parallel()

	const pattern = "{n, plural, other {{g, select, f {# hers} other {# theirs}}}}"

	assert.Equal(t, "3 hers",
		format(t, language.English, pattern, Values{"n": 3, "g": "f"}))
}

func TestFormatNumbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234", format(t, language.English, "{n, number}", Values{"n": 1234}))
	assert.Equal(t, "1.234,5", format(t, language.German, "{n, number}", Values{"n": 1234.5}))
	assert.Equal(t, "25%", format(t, language.English, "{n, number, percent}", Values{"n": 0.25}))
	assert.Equal(t, "3", format(t, language.English, "{n, number, integer}", Values{"n": 2.6}))

	// Numeric strings are accepted.
	assert.Equal(t, "2 items",
		format(t, language.English, "{n, plural, one {# item} other {# items}}", Values{"n": "2"}))
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, time.March, 14, 15, 9, 0, 0, time.UTC)

	assert.Equal(t, "March 14, 2025", format(t, language.English, "{d, date, long}", Values{"d": when}))
	assert.Equal(t, "3/14/25", format(t, language.English, "{d, date, short}", Values{"d": when}))
	assert.Equal(t, "3:09 PM", format(t, language.English, "{d, time, short}", Values{"d": when}))
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	bold := TagFunc(func(chunks string) string { return "<strong>" + chunks + "</strong>" })

	assert.Equal(t, "Read the <strong>guidelines</strong> first.",
		format(t, language.English, "Read the <b>guidelines</b> first.",
			Values{"b": bold}))

	// Nested tags and plain func values work the same way.
	out := format(t, language.English, "<b>bold <i>both</i></b>", Values{
		"b": bold,
		"i": func(chunks string) string { return "<em>" + chunks + "</em>" },
	})
	assert.Equal(t, "<strong>bold <em>both</em></strong>", out)

	// Self-closing tags receive empty chunks.
	assert.Equal(t, "one\ntwo",
		format(t, language.English, "one<br/>two",
			Values{"br": TagFunc(func(string) string { return "\n" })}))
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		values  Values
		reason  error
	}{
		{"MissingValue", "Hello, {name}!", nil, ErrMissingValue},
		{"MissingTagFunc", "<b>bold</b>", nil, ErrMissingTag},
		{"NonNumericPlural", "{n, plural, other {#}}", Values{"n": "many"}, ErrBadValue},
		{"BadNumberValue", "{n, number}", Values{"n": struct{}{}}, ErrBadValue},
		{"BadDateValue", "{d, date}", Values{"d": "today"}, ErrBadValue},
		{"UnknownNumberStyle", "{n, number, scientific}", Values{"n": 1}, ErrBadStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := Parse(tt.pattern)
			require.NoError(t, err)

			_, err = msg.Format(language.English, tt.values)
			require.Error(t, err)

			var formatErr *FormatError

			require.ErrorAs(t, err, &formatErr)
			assert.ErrorIs(t, err, tt.reason)
		})
	}
}
