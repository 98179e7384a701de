// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Catalog.Path = "./locales"

	cfg.Internationalization.StrictMissingKeys = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
