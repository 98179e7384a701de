// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icu

import (
	"errors"
	"fmt"
)

// Formatting errors wrapped by [FormatError].
var (
	// ErrMissingValue indicates that the value map has no entry for an argument.
	ErrMissingValue = errors.New("no value provided for argument")

	// ErrMissingTag indicates that the value map has no tag function for a tag.
	ErrMissingTag = errors.New("no tag function provided for tag")

	// ErrBadValue indicates that a value has a type the argument cannot format,
	// for example a string where a plural argument needs a number.
	ErrBadValue = errors.New("value has unsupported type for argument")

	// ErrBadStyle indicates an argument style the formatter does not know.
	ErrBadStyle = errors.New("unsupported argument style")
)

// SyntaxError reports an invalid ICU pattern. Pos is a byte offset into the
// pattern text.
type SyntaxError struct {
	Pos  int
	desc string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid ICU pattern at offset %d: %s", e.Pos, e.desc)
}

// FormatError reports that a parsed message could not be formatted against
// the provided values. Arg names the offending argument or tag.
type FormatError struct {
	Arg    string
	reason error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format argument %q: %v", e.Arg, e.reason)
}

func (e *FormatError) Unwrap() error {
	return e.reason
}
