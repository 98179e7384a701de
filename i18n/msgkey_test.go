// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgKeyAsComponent(t *testing.T) {
	var _ templ.Component = MsgKey("foo")
}

func TestMsgKeyTr(t *testing.T) {
	assert.Equal(t, "Artworks", MsgKey("HomePage.title").Tr(ctxFor("en")))
	assert.Equal(t, "Kunstwerke", MsgKey("HomePage.title").Tr(ctxFor("de")))
}

func TestMsgKeyRender(t *testing.T) {
	var b strings.Builder

	require.NoError(t, MsgKey("HomePage.title").Render(ctxFor("pt-BR"), &b))
	assert.Equal(t, "Obras", b.String())
}
