// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"testing"
)

// TestLoadConfig focuses on verifying main functionality (defaults, env
// overrides, validation failures), and *shouldn't* need exhaustive scenarios.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string            // Description of the test case
		env     map[string]string // Name of the environment variable and its value
		wantErr bool              // Whether an error is expected
	}{
		{
			name:    "Defaults only",
			env:     map[string]string{},
			wantErr: false,
		},
		{
			name: "Env overrides",
			env: map[string]string{
				"MFMT_CATALOG_PATH":        "./testdata",
				"MFMT_STRICT_MISSING_KEYS": "true",
				"MFMT_LOG_LEVEL":           "debug",
			},
			wantErr: false,
		},
		{
			name: "Invalid MFMT_LOG_LEVEL",
			env: map[string]string{
				"MFMT_LOG_LEVEL": "verbose",
			},
			wantErr: true,
		},
		{
			name: "Invalid MFMT_LOG_FORMAT",
			env: map[string]string{
				"MFMT_LOG_FORMAT": "logfmt",
			},
			wantErr: true,
		},
		{
			name: "Invalid MFMT_STRICT_MISSING_KEYS",
			env: map[string]string{
				"MFMT_STRICT_MISSING_KEYS": "definitely",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			config := &Config{}

			err := config.LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if !tt.wantErr {
				// Test whether config fields were set correctly
				if config.Catalog.Path == "" {
					t.Error("LoadConfig() Catalog.Path is empty")
				}

				if want := tt.env["MFMT_CATALOG_PATH"]; want != "" && config.Catalog.Path != want {
					t.Errorf("LoadConfig() Catalog.Path = %v, want %v", config.Catalog.Path, want)
				}

				if tt.env["MFMT_STRICT_MISSING_KEYS"] == "true" && !config.Internationalization.StrictMissingKeys {
					t.Error("LoadConfig() StrictMissingKeys = false, want true")
				}

				if config.Log.Level == "" {
					t.Error("LoadConfig() Log.Level is empty")
				}
			}
		})
	}
}
