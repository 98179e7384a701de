// Copyright 2025, the mfmt contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
)

// Global exposes the library configuration.
var Global Config

// Config holds the runtime configuration for catalog loading, missing-key
// policy, and logging.
type Config struct {
	Catalog struct {
		// Path is the directory scanned for <locale>.<format> catalog files.
		Path string `env:"MFMT_CATALOG_PATH,overwrite" yaml:"path"`
	} `yaml:"catalog"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"MFMT_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`

	Log struct {
		Level   string   `env:"MFMT_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"MFMT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"MFMT_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (MFMT_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("MFMT_CONFIGFILE"); envVar != "" {
		configFilePath = envVar
	} else {
		// If neither flag nor env var was provided, use the default value
		// from the flag ("./config.yaml").
		configFilePath = parsedConfigFlagValue
		// Then, perform a fallback check for "./config.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	return nil
}
