// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	config "codeberg.org/mfmt/mfmt/configs"
)

var (
	// Logger is the logger used by package i18n.
	Logger zerolog.Logger

	// missingKeyOnce deduplicates WARN logs for missing keys in strict mode.
	// The key is locale+"\x00"+key.
	missingKeyOnce sync.Map
)

func strictMissingKeys() bool {
	return config.Global.Internationalization.StrictMissingKeys
}

// logMissingOnce logs a missing translation warning once per (locale, key)
// pair when strict mode is enabled.
func logMissingOnce(locale, key string) {
	if !strictMissingKeys() {
		return
	}

	id := locale + "\x00" + key
	if _, loaded := missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		Logger.Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing translation")
	}
}

// strippedTagString removes variants to form a stable key using base, script and region only.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}
