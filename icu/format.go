// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Values maps argument names to interpolation values. Plain arguments accept
// strings, numbers, bools, time.Time, and fmt.Stringer implementations.
// Rich-text tags take a [TagFunc] under the tag name.
type Values map[string]any

// TagFunc renders the formatted chunks enclosed by a rich-text tag. For a
// self-closing tag the chunks are empty.
type TagFunc func(chunks string) string

// Format renders the message against values, localised for loc. Plural
// category selection and number rendering follow the CLDR data for loc.
//
// Formatting is strict about values: a missing argument, a missing tag
// function, or a value of an unusable type yields a [FormatError] and an
// empty result.
func (m *Message) Format(loc language.Tag, values Values) (string, error) {
	f := &formatter{
		loc:     loc,
		printer: message.NewPrinter(loc),
		values:  values,
	}

	var b strings.Builder
	if err := f.formatNodes(&b, m.nodes, nil); err != nil {
		return "", err
	}

	return b.String(), nil
}

// formatter carries per-call state. pound is the value of the nearest
// enclosing plural branch, with its offset already applied.
type formatter struct {
	loc     language.Tag
	printer *message.Printer
	values  Values
}

func (f *formatter) formatNodes(b *strings.Builder, nodes []node, pound *numValue) error {
	for _, n := range nodes {
		switch x := n.(type) {
		case textNode:
			b.WriteString(string(x))
		case poundNode:
			// The parser only emits poundNode inside plural branches.
			b.WriteString(f.formatNumber(*pound))
		case argNode:
			if err := f.formatArg(b, x); err != nil {
				return err
			}
		case pluralNode:
			if err := f.formatPlural(b, x); err != nil {
				return err
			}
		case selectNode:
			if err := f.formatSelect(b, x, pound); err != nil {
				return err
			}
		case tagNode:
			if err := f.formatTag(b, x, pound); err != nil {
				return err
			}
		}
	}

	return nil
}

func (f *formatter) lookup(name string) (any, error) {
	v, ok := f.values[name]
	if !ok {
		return nil, &FormatError{Arg: name, reason: ErrMissingValue}
	}

	return v, nil
}

func (f *formatter) formatArg(b *strings.Builder, arg argNode) error {
	v, err := f.lookup(arg.name)
	if err != nil {
		return err
	}

	switch arg.kind {
	case argNumber:
		return f.formatNumberArg(b, arg, v)
	case argDate, argTime:
		return f.formatTimeArg(b, arg, v)
	default:
		return f.formatPlainArg(b, arg, v)
	}
}

func (f *formatter) formatPlainArg(b *strings.Builder, arg argNode, v any) error {
	switch x := v.(type) {
	case string:
		b.WriteString(x)
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case time.Time:
		b.WriteString(x.Format(dateLayouts["medium"]))
	case fmt.Stringer:
		b.WriteString(x.String())
	default:
		n, ok := toNumber(v)
		if !ok {
			return &FormatError{Arg: arg.name, reason: ErrBadValue}
		}

		b.WriteString(f.formatNumber(n))
	}

	return nil
}

func (f *formatter) formatNumberArg(b *strings.Builder, arg argNode, v any) error {
	n, ok := toNumber(v)
	if !ok {
		return &FormatError{Arg: arg.name, reason: ErrBadValue}
	}

	switch arg.style {
	case "":
		b.WriteString(f.formatNumber(n))
	case "integer":
		b.WriteString(f.formatNumber(intValue(int64(math.Round(n.f)))))
	case "percent":
		if n.isInt {
			b.WriteString(f.printer.Sprint(number.Percent(n.i)))
		} else {
			b.WriteString(f.printer.Sprint(number.Percent(n.f)))
		}
	default:
		return &FormatError{Arg: arg.name, reason: ErrBadStyle}
	}

	return nil
}

// Layouts for the ICU date and time styles. Locale-specific field ordering
// is out of scope; the styles control verbosity only.
var (
	dateLayouts = map[string]string{
		"":       "Jan 2, 2006",
		"short":  "1/2/06",
		"medium": "Jan 2, 2006",
		"long":   "January 2, 2006",
		"full":   "Monday, January 2, 2006",
	}

	timeLayouts = map[string]string{
		"":       "3:04:05 PM",
		"short":  "3:04 PM",
		"medium": "3:04:05 PM",
		"long":   "3:04:05 PM MST",
		"full":   "3:04:05 PM MST",
	}
)

func (f *formatter) formatTimeArg(b *strings.Builder, arg argNode, v any) error {
	t, ok := v.(time.Time)
	if !ok {
		return &FormatError{Arg: arg.name, reason: ErrBadValue}
	}

	layouts := dateLayouts
	if arg.kind == argTime {
		layouts = timeLayouts
	}

	layout, ok := layouts[arg.style]
	if !ok {
		return &FormatError{Arg: arg.name, reason: ErrBadStyle}
	}

	b.WriteString(t.Format(layout))

	return nil
}

func (f *formatter) formatPlural(b *strings.Builder, pl pluralNode) error {
	v, err := f.lookup(pl.name)
	if err != nil {
		return err
	}

	n, ok := toNumber(v)
	if !ok {
		return &FormatError{Arg: pl.name, reason: ErrBadValue}
	}

	// Exact selectors match against the raw value; categories and '#' use
	// the value with the offset applied.
	for _, br := range pl.branches {
		if br.hasExact && br.exact == n.f {
			shifted := n.minus(pl.offset)

			return f.formatNodes(b, br.body, &shifted)
		}
	}

	shifted := n.minus(pl.offset)
	form := pluralForm(f.loc, shifted, pl.ordinal)

	var other []node

	for _, br := range pl.branches {
		if br.hasExact {
			continue
		}

		if br.form == form {
			return f.formatNodes(b, br.body, &shifted)
		}

		if br.form == formByKeyword["other"] {
			other = br.body
		}
	}

	return f.formatNodes(b, other, &shifted)
}

func (f *formatter) formatSelect(b *strings.Builder, sel selectNode, pound *numValue) error {
	v, err := f.lookup(sel.name)
	if err != nil {
		return err
	}

	key, ok := selectKey(v)
	if !ok {
		return &FormatError{Arg: sel.name, reason: ErrBadValue}
	}

	var other []node

	for _, br := range sel.branches {
		if br.key == key {
			return f.formatNodes(b, br.body, pound)
		}

		if br.key == "other" {
			other = br.body
		}
	}

	return f.formatNodes(b, other, pound)
}

// selectKey coerces a select value to a branch key.
func selectKey(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case fmt.Stringer:
		return x.String(), true
	default:
		if n, ok := toNumber(v); ok && n.isInt {
			return strconv.FormatInt(n.i, 10), true
		}

		return "", false
	}
}

func (f *formatter) formatTag(b *strings.Builder, tag tagNode, pound *numValue) error {
	var inner strings.Builder
	if err := f.formatNodes(&inner, tag.body, pound); err != nil {
		return err
	}

	v, ok := f.values[tag.name]
	if !ok {
		return &FormatError{Arg: tag.name, reason: ErrMissingTag}
	}

	switch fn := v.(type) {
	case TagFunc:
		b.WriteString(fn(inner.String()))
	case func(string) string:
		b.WriteString(fn(inner.String()))
	default:
		return &FormatError{Arg: tag.name, reason: ErrBadValue}
	}

	return nil
}

// formatNumber renders n with the locale's grouping and decimal separators.
func (f *formatter) formatNumber(n numValue) string {
	if n.isInt {
		return f.printer.Sprint(number.Decimal(n.i))
	}

	return f.printer.Sprint(number.Decimal(n.f))
}
