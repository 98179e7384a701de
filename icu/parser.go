// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses pattern into a [Message]. Most callers should prefer
// [Compile], which memoizes parsed patterns.
func Parse(pattern string) (*Message, error) {
	p := &parser{src: pattern}

	nodes, err := p.parseNodes(false, "")
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.src) {
		return nil, p.errf("unmatched %q", string(p.src[p.pos]))
	}

	return &Message{pattern: pattern, nodes: nodes}, nil
}

// parser is a single-pass recursive-descent parser over the pattern bytes.
// inPlural tracks the nesting depth of plural and selectordinal branches,
// within which '#' is a placeholder rather than literal text.
type parser struct {
	src      string
	pos      int
	inPlural int
}

func (p *parser) errf(format string, args ...any) error {
	return &SyntaxError{Pos: p.pos, desc: fmt.Sprintf(format, args...)}
}

// parseNodes parses a message body. With stopAtBrace, parsing stops before an
// unmatched '}' so the caller can consume it. With a non-empty closingTag,
// parsing consumes the matching closing tag and returns.
func (p *parser) parseNodes(stopAtBrace bool, closingTag string) ([]node, error) {
	var nodes []node

	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '}':
			if closingTag != "" {
				return nil, p.errf("unclosed tag <%s>", closingTag)
			}

			if !stopAtBrace {
				return nil, p.errf("unmatched '}'")
			}

			return nodes, nil
		case c == '{':
			n, err := p.parseArgument()
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)
		case c == '#' && p.inPlural > 0:
			p.pos++

			nodes = append(nodes, poundNode{})
		case c == '<' && p.closingTagAhead():
			if closingTag == "" {
				return nil, p.errf("unexpected closing tag")
			}

			name, err := p.parseClosingTag()
			if err != nil {
				return nil, err
			}

			if name != closingTag {
				return nil, p.errf("mismatched closing tag </%s>, open tag is <%s>", name, closingTag)
			}

			return nodes, nil
		case c == '<' && p.openingTagAhead():
			n, err := p.parseTag(stopAtBrace)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, n)
		default:
			nodes = append(nodes, textNode(p.scanText()))
		}
	}

	if closingTag != "" {
		return nil, p.errf("unclosed tag <%s>", closingTag)
	}

	if stopAtBrace {
		return nil, p.errf("unexpected end of pattern, expected '}'")
	}

	return nodes, nil
}

// scanText consumes a run of literal text, resolving apostrophe quoting.
// It stops before '{', '}', a significant '#' or tag, and the end of input.
func (p *parser) scanText() string {
	var b strings.Builder

	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '{' || c == '}':
			return b.String()
		case c == '#' && p.inPlural > 0:
			return b.String()
		case c == '<':
			if p.closingTagAhead() || p.openingTagAhead() {
				return b.String()
			}

			b.WriteByte(c)
			p.pos++
		case c == '\'':
			p.scanQuoted(&b)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return b.String()
}

// scanQuoted resolves an apostrophe at the current position. A doubled
// apostrophe is a literal one; an apostrophe before a special character opens
// a quoted span that runs to the next single apostrophe, or to the end of the
// pattern when unterminated.
func (p *parser) scanQuoted(b *strings.Builder) {
	if p.pos+1 >= len(p.src) {
		b.WriteByte('\'')
		p.pos++

		return
	}

	next := p.src[p.pos+1]
	if next == '\'' {
		b.WriteByte('\'')
		p.pos += 2

		return
	}

	if next != '{' && next != '}' && next != '#' && next != '<' {
		b.WriteByte('\'')
		p.pos++

		return
	}

	p.pos++ // opening apostrophe

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.pos += 2

				continue
			}

			p.pos++ // closing apostrophe

			return
		}

		b.WriteByte(c)
		p.pos++
	}
}

func (p *parser) openingTagAhead() bool {
	return p.pos+1 < len(p.src) && p.src[p.pos] == '<' && isLetter(p.src[p.pos+1])
}

func (p *parser) closingTagAhead() bool {
	return strings.HasPrefix(p.src[p.pos:], "</")
}

// parseTag parses an opening tag and its body up to the matching closing tag,
// or a self-closing tag such as <br/>.
func (p *parser) parseTag(stopAtBrace bool) (node, error) {
	p.pos++ // '<'

	name := p.scanIdent()
	if name == "" {
		return nil, p.errf("expected tag name")
	}

	if strings.HasPrefix(p.src[p.pos:], "/>") {
		p.pos += 2

		return tagNode{name: name, selfClosing: true}, nil
	}

	if p.pos >= len(p.src) || p.src[p.pos] != '>' {
		return nil, p.errf("expected '>' after tag name %q", name)
	}

	p.pos++

	body, err := p.parseNodes(stopAtBrace, name)
	if err != nil {
		return nil, err
	}

	return tagNode{name: name, body: body}, nil
}

// parseClosingTag consumes "</name>" and returns the name.
func (p *parser) parseClosingTag() (string, error) {
	p.pos += 2 // "</"

	name := p.scanIdent()
	if name == "" {
		return "", p.errf("expected tag name in closing tag")
	}

	if p.pos >= len(p.src) || p.src[p.pos] != '>' {
		return "", p.errf("expected '>' in closing tag </%s", name)
	}

	p.pos++

	return name, nil
}

// parseArgument parses one {...} argument. The opening brace is at the
// current position.
func (p *parser) parseArgument() (node, error) {
	p.pos++ // '{'
	p.skipSpace()

	name := p.scanIdent()
	if name == "" {
		return nil, p.errf("expected argument name")
	}

	p.skipSpace()

	if p.pos >= len(p.src) {
		return nil, p.errf("unterminated argument %q", name)
	}

	switch p.src[p.pos] {
	case '}':
		p.pos++

		return argNode{name: name}, nil
	case ',':
		p.pos++
		p.skipSpace()

		kw := p.scanIdent()

		p.skipSpace()

		switch kw {
		case "number":
			return p.parseSimpleArg(name, argNumber)
		case "date":
			return p.parseSimpleArg(name, argDate)
		case "time":
			return p.parseSimpleArg(name, argTime)
		case "plural":
			return p.parsePlural(name, false)
		case "selectordinal":
			return p.parsePlural(name, true)
		case "select":
			return p.parseSelect(name)
		default:
			return nil, p.errf("unsupported argument type %q", kw)
		}
	default:
		return nil, p.errf("expected ',' or '}' in argument %q", name)
	}
}

// parseSimpleArg finishes a number, date, or time argument, with an optional
// style after a second comma.
func (p *parser) parseSimpleArg(name string, kind argKind) (node, error) {
	if p.pos >= len(p.src) {
		return nil, p.errf("unterminated argument %q", name)
	}

	if p.src[p.pos] == '}' {
		p.pos++

		return argNode{name: name, kind: kind}, nil
	}

	if p.src[p.pos] != ',' {
		return nil, p.errf("expected ',' or '}' in argument %q", name)
	}

	p.pos++

	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		return nil, p.errf("unterminated argument %q", name)
	}

	style := strings.TrimSpace(p.src[p.pos : p.pos+end])
	p.pos += end + 1

	if style == "" {
		return nil, p.errf("empty style in argument %q", name)
	}

	return argNode{name: name, kind: kind, style: style}, nil
}

// parsePlural finishes a plural or selectordinal argument: an optional
// offset followed by selector/branch pairs.
func (p *parser) parsePlural(name string, ordinal bool) (node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != ',' {
		return nil, p.errf("expected ',' after plural keyword in argument %q", name)
	}

	p.pos++
	p.skipSpace()

	pn := pluralNode{name: name, ordinal: ordinal}

	if strings.HasPrefix(p.src[p.pos:], "offset:") {
		p.pos += len("offset:")
		p.skipSpace()

		numStr := p.scanNumber()
		if numStr == "" {
			return nil, p.errf("expected number after offset: in argument %q", name)
		}

		off, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return nil, p.errf("invalid offset %q in argument %q", numStr, name)
		}

		pn.offset = off
	}

	seen := make(map[string]bool)
	hasOther := false

	for {
		p.skipSpace()

		if p.pos >= len(p.src) {
			return nil, p.errf("unterminated plural argument %q", name)
		}

		if p.src[p.pos] == '}' {
			p.pos++

			break
		}

		var (
			br       pluralBranch
			selector string
		)

		if p.src[p.pos] == '=' {
			p.pos++

			numStr := p.scanNumber()
			if numStr == "" {
				return nil, p.errf("expected number after '=' in argument %q", name)
			}

			val, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return nil, p.errf("invalid exact selector %q in argument %q", numStr, name)
			}

			br.exact = val
			br.hasExact = true
			selector = "=" + numStr
		} else {
			kw := p.scanIdent()
			if kw == "" {
				return nil, p.errf("expected selector in plural argument %q", name)
			}

			form, ok := formByKeyword[kw]
			if !ok {
				return nil, p.errf("unknown plural selector %q in argument %q", kw, name)
			}

			br.form = form
			selector = kw
			hasOther = hasOther || kw == "other"
		}

		if seen[selector] {
			return nil, p.errf("duplicate selector %q in argument %q", selector, name)
		}

		seen[selector] = true

		p.skipSpace()

		body, err := p.parseBranchBody(true)
		if err != nil {
			return nil, err
		}

		br.body = body
		pn.branches = append(pn.branches, br)
	}

	if !hasOther {
		return nil, p.errf("plural argument %q needs an \"other\" branch", name)
	}

	return pn, nil
}

// parseSelect finishes a select argument: selector/branch pairs with a
// mandatory "other" branch.
func (p *parser) parseSelect(name string) (node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != ',' {
		return nil, p.errf("expected ',' after select keyword in argument %q", name)
	}

	p.pos++

	sn := selectNode{name: name}
	seen := make(map[string]bool)
	hasOther := false

	for {
		p.skipSpace()

		if p.pos >= len(p.src) {
			return nil, p.errf("unterminated select argument %q", name)
		}

		if p.src[p.pos] == '}' {
			p.pos++

			break
		}

		key := p.scanSelector()
		if key == "" {
			return nil, p.errf("expected selector in select argument %q", name)
		}

		if seen[key] {
			return nil, p.errf("duplicate selector %q in argument %q", key, name)
		}

		seen[key] = true
		hasOther = hasOther || key == "other"

		p.skipSpace()

		body, err := p.parseBranchBody(false)
		if err != nil {
			return nil, err
		}

		sn.branches = append(sn.branches, selectBranch{key: key, body: body})
	}

	if !hasOther {
		return nil, p.errf("select argument %q needs an \"other\" branch", name)
	}

	return sn, nil
}

// parseBranchBody parses a braced sub-message. In plural scope, '#' becomes
// a placeholder for the branch body and everything nested in it.
func (p *parser) parseBranchBody(pluralScope bool) ([]node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, p.errf("expected '{' to open a branch")
	}

	p.pos++

	if pluralScope {
		p.inPlural++
	}

	body, err := p.parseNodes(true, "")

	if pluralScope {
		p.inPlural--
	}

	if err != nil {
		return nil, err
	}

	p.pos++ // '}'

	return body, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// scanIdent reads an argument, tag, or keyword name.
func (p *parser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}

	return p.src[start:p.pos]
}

// scanSelector reads a select branch key, which may also contain '-'.
func (p *parser) scanSelector() string {
	start := p.pos
	for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '_' || p.src[p.pos] == '-') {
		p.pos++
	}

	return p.src[start:p.pos]
}

// scanNumber reads an optionally signed decimal number.
func (p *parser) scanNumber() string {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}

	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}

	return p.src[start:p.pos]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
