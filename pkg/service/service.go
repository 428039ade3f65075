// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package service

import (
	"primesieve/pkg/config"
	"primesieve/pkg/logging"

	"fmt"
	"sort"
)

// ValidateAndLoadConfig validates and loads configuration from file
func ValidateAndLoadConfig(configFile string) (config.Config, error) {
	logging.ConfigLogger.Trace("ValidateAndLoadConfig() started with file: %s", configFile)
	logging.ConfigLogger.Debug("Loading configuration from file: %s", configFile)
	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	logging.ConfigLogger.Verbose("Validating loaded configuration...")
	if err := config.ValidateConfig(&cfg); err != nil {
		logging.ConfigLogger.Debug("Configuration validation failed: %v", err)
		return config.Config{}, fmt.Errorf("validating configuration: %w", err)
	}

	logging.ConfigLogger.Debug("Configuration loaded and validated successfully")
	return cfg, nil
}

// SelectProfile merges the named profile over the default one. An empty name
// keeps the default; an unknown name is an error.
func SelectProfile(cfg config.Config, name string) (config.Config, error) {
	if len(cfg.Profiles) > 0 {
		names := make([]string, 0, len(cfg.Profiles))
		for n := range cfg.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		logging.ConfigLogger.Debug("Profiles found in configuration: %v", names)
	}

	if name == "" {
		logging.ConfigLogger.Debug("Using default profile")
		return cfg, nil
	}
	selected, ok := cfg.Profiles[name]
	if !ok {
		return cfg, fmt.Errorf("profile %q not found in configuration", name)
	}
	logging.ConfigLogger.Debug("Applying selected profile: %s", name)
	cfg.Default = config.MergeProfiles(cfg.Default, selected)
	return cfg, nil
}
