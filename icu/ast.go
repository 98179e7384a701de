// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"sort"

	"golang.org/x/text/feature/plural"
)

// Message is a parsed ICU MessageFormat pattern, ready for formatting.
// A Message is immutable and safe for concurrent use.
type Message struct {
	pattern string
	nodes   []node
}

// Pattern returns the original pattern text the message was parsed from.
func (m *Message) Pattern() string {
	return m.pattern
}

// node is a single element of a parsed pattern.
type node any

// textNode is a run of literal text with all quoting already resolved.
type textNode string

// argKind distinguishes the formatting applied to a simple argument.
type argKind int

const (
	argPlain argKind = iota
	argNumber
	argDate
	argTime
)

// argNode is a simple or typed argument such as {name} or {n, number, percent}.
type argNode struct {
	name  string
	kind  argKind
	style string
}

// poundNode is the '#' placeholder inside a plural or selectordinal branch.
type poundNode struct{}

// pluralBranch is one alternative of a plural or selectordinal argument.
// Either exact is valid (an "=N" selector) or form holds the CLDR category.
type pluralBranch struct {
	exact    float64
	hasExact bool
	form     plural.Form
	body     []node
}

// pluralNode is a {name, plural, ...} or {name, selectordinal, ...} argument.
type pluralNode struct {
	name     string
	ordinal  bool
	offset   int64
	branches []pluralBranch
}

// selectBranch is one alternative of a select argument.
type selectBranch struct {
	key  string
	body []node
}

// selectNode is a {name, select, ...} argument.
type selectNode struct {
	name     string
	branches []selectBranch
}

// tagNode is a rich-text element such as <b>...</b> or <br/>.
type tagNode struct {
	name        string
	body        []node
	selfClosing bool
}

// Args returns the sorted set of argument names the message interpolates.
// Tag names are not included; see [Message.Tags].
func (m *Message) Args() []string {
	set := make(map[string]struct{})
	collectNames(m.nodes, set, false)

	return sortedNames(set)
}

// Tags returns the sorted set of rich-text tag names the message uses.
func (m *Message) Tags() []string {
	set := make(map[string]struct{})
	collectNames(m.nodes, set, true)

	return sortedNames(set)
}

func collectNames(nodes []node, set map[string]struct{}, tags bool) {
	for _, n := range nodes {
		switch x := n.(type) {
		case argNode:
			if !tags {
				set[x.name] = struct{}{}
			}
		case pluralNode:
			if !tags {
				set[x.name] = struct{}{}
			}

			for _, br := range x.branches {
				collectNames(br.body, set, tags)
			}
		case selectNode:
			if !tags {
				set[x.name] = struct{}{}
			}

			for _, br := range x.branches {
				collectNames(br.body, set, tags)
			}
		case tagNode:
			if tags {
				set[x.name] = struct{}{}
			}

			collectNames(x.body, set, tags)
		}
	}
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}
