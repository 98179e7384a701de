// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"
)

// Translatable is a value that can translate itself using a context.
// Types such as [MsgKey] implement Translatable.
type Translatable interface {
	Tr(ctx context.Context) string
}

// MsgKey is a fully qualified, dot-delimited message key.
//
// Construct with MsgKey("HomePage.title") and call Tr(ctx) to resolve
// using the current locale in ctx.
type MsgKey string

// Tr resolves this key within the current locale chain.
// It is equivalent to calling [T] with the same key.
// The ctx may be nil, in which case the base locale is used.
// Setup must be called successfully before using this.
func (s MsgKey) Tr(ctx context.Context) string {
	return T(ctx, string(s))
}

func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, s.Tr(ctx))

	return err
}
