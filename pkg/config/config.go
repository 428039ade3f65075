// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"primesieve/pkg/logger"
)

// DefaultConfigFile is read when present; its absence is not an error.
const DefaultConfigFile = "/etc/primesieve.yaml"

// DefaultPrime matches the bound used when none is given.
const DefaultPrime = "1000000"

// MaxRounds caps how often one bound is sieved in a single run.
const MaxRounds = 1000000

var validLogTypes = []string{"console", "file", "both"}

type Config struct {
	Default  Profile            `yaml:"default" json:"default"`
	Profiles map[string]Profile `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// Bound is the textual prime bound ("1000000", "1e6"). JSON configs may give
// it as a number or a string.
type Bound string

func (b *Bound) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Bound(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("prime must be a number or a string, got %s", data)
	}
	*b = Bound(n.String())
	return nil
}

type Profile struct {
	Prime         Bound  `yaml:"prime" json:"prime"`
	Rounds        int    `yaml:"rounds" json:"rounds"`
	Format        string `yaml:"format" json:"format"`
	Locale        string `yaml:"locale" json:"locale"`
	MemoryLimit   string `yaml:"memory_limit" json:"memory_limit"`
	LogLevel      string `yaml:"log_level" json:"log_level"`
	LogTimestamps bool   `yaml:"log_timestamps" json:"log_timestamps"`
	LogType       string `yaml:"log_type" json:"log_type"`
	LogFile       string `yaml:"log_file" json:"log_file"`
}

func DefaultConfig() Config {
	return Config{
		Default: Profile{
			Prime:         DefaultPrime,
			Rounds:        1,
			Format:        "text",
			Locale:        "en-US",
			MemoryLimit:   "auto",
			LogLevel:      "info",
			LogTimestamps: false,
			LogType:       "console",
			LogFile:       "/var/log/primesieve.log",
		},
		Profiles: make(map[string]Profile),
	}
}

// LoadConfig decodes filePath on top of DefaultConfig, so keys missing from
// the file keep their defaults.
func LoadConfig(filePath string) (Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&config); err != nil {
			return Config{}, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}

	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}
	return config, nil
}

// LoadConfiguration loads configFile, falling back to DefaultConfig when the
// file is empty or is the default path and does not exist.
func LoadConfiguration(configFile string) (Config, error) {
	if configFile == "" {
		return DefaultConfig(), nil
	}

	_, err := os.Stat(configFile)
	switch {
	case err == nil:
		return LoadConfig(configFile)
	case errors.Is(err, os.ErrNotExist):
		if configFile == DefaultConfigFile {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("configuration file %s not found: %w", configFile, err)
	default:
		return Config{}, fmt.Errorf("checking configuration file existence: %w", err)
	}
}

func ValidateConfig(cfg *Config) error {
	if err := validateProfile("default", cfg.Default, true); err != nil {
		return err
	}
	for name, profile := range cfg.Profiles {
		if err := validateProfile(name, profile, false); err != nil {
			return err
		}
	}
	return nil
}

// validateProfile checks one profile. Named profiles may leave fields empty
// since they are merged over the default.
func validateProfile(name string, p Profile, required bool) error {
	where := ""
	if !required {
		where = " in profile " + name
	}

	if required && p.Prime == "" {
		return fmt.Errorf("missing required configuration: prime")
	}
	if p.Rounds < 0 || p.Rounds > MaxRounds || (required && p.Rounds == 0) {
		return fmt.Errorf("invalid rounds%s: %d (must be between 1 and %d)", where, p.Rounds, MaxRounds)
	}
	// format names are checked against the output registry when the writer is built
	if required && p.Format == "" {
		return fmt.Errorf("missing required configuration: format")
	}
	if (required || p.LogLevel != "") && !logger.IsValidLevel(p.LogLevel) {
		return fmt.Errorf("invalid log level%s: %q (must be error, warn, info, verbose, debug, or trace)", where, p.LogLevel)
	}
	if err := oneOf("log type", where, p.LogType, validLogTypes, required); err != nil {
		return err
	}
	lt := strings.ToLower(p.LogType)
	if required && (lt == "file" || lt == "both") && p.LogFile == "" {
		return fmt.Errorf("log type %s requires log_file", p.LogType)
	}
	return nil
}

func oneOf(what, where, value string, allowed []string, required bool) error {
	if value == "" && !required {
		return nil
	}
	v := strings.ToLower(value)
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s%s: %q (must be %s)", what, where, value, strings.Join(allowed, ", "))
}

func SaveConfig(filePath string, config Config) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		encoder.SetIndent(2)
		if err := encoder.Encode(config); err != nil {
			return fmt.Errorf("failed to encode YAML config: %w", err)
		}
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(config); err != nil {
			return fmt.Errorf("failed to encode JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}

	return nil
}

func MergeProfiles(defaultProfile, selectedProfile Profile) Profile {
	mergedProfile := defaultProfile

	if selectedProfile.Prime != "" {
		mergedProfile.Prime = selectedProfile.Prime
	}
	if selectedProfile.Rounds != 0 {
		mergedProfile.Rounds = selectedProfile.Rounds
	}
	if selectedProfile.Format != "" {
		mergedProfile.Format = selectedProfile.Format
	}
	if selectedProfile.Locale != "" {
		mergedProfile.Locale = selectedProfile.Locale
	}
	if selectedProfile.MemoryLimit != "" {
		mergedProfile.MemoryLimit = selectedProfile.MemoryLimit
	}
	if selectedProfile.LogLevel != "" {
		mergedProfile.LogLevel = selectedProfile.LogLevel
	}
	if selectedProfile.LogType != "" {
		mergedProfile.LogType = selectedProfile.LogType
	}
	if selectedProfile.LogFile != "" {
		mergedProfile.LogFile = selectedProfile.LogFile
	}

	// Boolean flags
	if selectedProfile.LogTimestamps {
		mergedProfile.LogTimestamps = true
	}

	return mergedProfile
}
