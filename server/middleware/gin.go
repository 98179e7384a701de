// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinLocalize adapts [Localize] to a gin handler chain. The matched tag is
// installed on the underlying request context, so i18n.T works with
// c.Request.Context() in handlers.
func GinLocalize() gin.HandlerFunc {
	return func(c *gin.Context) {
		Localize(c.Writer, c.Request, ginNext{c})
	}
}

// ginNext continues the gin handler chain with the localized request.
type ginNext struct {
	c *gin.Context
}

func (n ginNext) ServeHTTP(_ http.ResponseWriter, r *http.Request) {
	n.c.Request = r
	n.c.Next()
}
