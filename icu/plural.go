// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// formByKeyword maps CLDR category keywords to x/text plural forms.
var formByKeyword = map[string]plural.Form{
	"zero":  plural.Zero,
	"one":   plural.One,
	"two":   plural.Two,
	"few":   plural.Few,
	"many":  plural.Many,
	"other": plural.Other,
}

// numValue carries a numeric argument value. Integers keep their exact
// representation so that digit grouping and plural operands stay precise.
type numValue struct {
	f     float64
	i     int64
	isInt bool
}

// toNumber coerces a formatting value to a number. Numeric strings are
// accepted so that values decoded from JSON or query parameters work without
// conversion by the caller.
func toNumber(v any) (numValue, bool) {
	switch x := v.(type) {
	case int:
		return intValue(int64(x)), true
	case int8:
		return intValue(int64(x)), true
	case int16:
		return intValue(int64(x)), true
	case int32:
		return intValue(int64(x)), true
	case int64:
		return intValue(x), true
	case uint:
		return intValue(int64(x)), true
	case uint8:
		return intValue(int64(x)), true
	case uint16:
		return intValue(int64(x)), true
	case uint32:
		return intValue(int64(x)), true
	case uint64:
		return intValue(int64(x)), true
	case float32:
		return numValue{f: float64(x)}, true
	case float64:
		return numValue{f: x}, true
	case string:
		if i, err := strconv.ParseInt(x, 10, 64); err == nil {
			return intValue(i), true
		}

		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return numValue{f: f}, true
		}

		return numValue{}, false
	default:
		return numValue{}, false
	}
}

func intValue(i int64) numValue {
	return numValue{f: float64(i), i: i, isInt: true}
}

// minus returns the value reduced by a plural offset.
func (n numValue) minus(offset int64) numValue {
	if offset == 0 {
		return n
	}

	if n.isInt {
		return intValue(n.i - offset)
	}

	return numValue{f: n.f - float64(offset)}
}

// pluralForm selects the CLDR cardinal or ordinal category for n in the
// given locale.
func pluralForm(loc language.Tag, n numValue, ordinal bool) plural.Form {
	rules := plural.Cardinal
	if ordinal {
		rules = plural.Ordinal
	}

	if n.isInt {
		i := n.i
		if i < 0 {
			i = -i
		}

		return rules.MatchPlural(loc, int(i), 0, 0, 0, 0)
	}

	// Decompose the float into the CLDR plural operands: the integer part i
	// and the visible fraction digits as count v/w and value f/t. With
	// shortest-form formatting there are no trailing zeros, so v==w and f==t.
	s := strconv.FormatFloat(math.Abs(n.f), 'f', -1, 64)

	intPart, frac, _ := strings.Cut(s, ".")

	i, _ := strconv.Atoi(intPart)
	fv, _ := strconv.Atoi(frac)

	return rules.MatchPlural(loc, i, len(frac), len(frac), fv, fv)
}
