// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
)

// validation errors.
var (
	errEmptyCatalogPath = errors.New("catalog.path cannot be empty")
	errInvalidLogLevel  = errors.New("invalid Log.Level value")
	errInvalidLogFormat = errors.New("invalid Log.Format value")
)

// validate checks the configuration for invalid values.
func (cfg *Config) validate() error {
	if cfg.Catalog.Path == "" {
		return errEmptyCatalogPath
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: %s", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
