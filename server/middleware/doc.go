// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP middleware that resolves the request
language and installs it on the request context, for plain net/http
handler chains and for gin.
*/
package middleware
