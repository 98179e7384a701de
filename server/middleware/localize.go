// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"

	"codeberg.org/mfmt/mfmt/i18n"
)

// langCookieMaxAge keeps an explicit language choice for a year.
const langCookieMaxAge = 365 * 24 * 60 * 60

// Localize is a middleware that resolves the preferred language for each
// request and installs the matched tag on the request context, so that
// downstream handlers can call i18n.T with r.Context().
//
// It also sets the Content-Language response header to the matched tag.
//
// When the request carries an explicit lang query parameter, the choice is
// persisted in a cookie so later requests without the parameter keep the
// language. The special value "auto" clears the cookie and falls back to
// Accept-Language negotiation.
func Localize(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if q := r.URL.Query().Get(i18n.LangParam); q != "" {
		persistChoice(w, q)
	}

	tag := i18n.FromRequest(r)

	w.Header().Set("Content-Language", tag.String())

	next.ServeHTTP(w, r.WithContext(i18n.WithTag(r.Context(), tag)))
}

// persistChoice stores or clears the language cookie for an explicit
// lang query parameter.
func persistChoice(w http.ResponseWriter, choice string) {
	cookie := &http.Cookie{
		Name:     i18n.LangCookie,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}

	if strings.EqualFold(choice, "auto") {
		cookie.MaxAge = -1
	} else {
		cookie.Value = choice
		cookie.MaxAge = langCookieMaxAge
	}

	http.SetCookie(w, cookie)
}
