// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"errors"
	"io"
	"testing"

	"primesieve/pkg/config"
)

func mustParse(t *testing.T, args ...string) (*Flags, map[string]bool) {
	t.Helper()
	flags, explicit, err := ParseFlags(NewFlagSet("test", io.Discard), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return flags, explicit
}

func TestParseFlagsDefaults(t *testing.T) {
	flags, explicit := mustParse(t)
	if len(explicit) != 0 {
		t.Fatalf("no flags given, got explicit %v", explicit)
	}
	if *flags.Prime != config.DefaultPrime || *flags.Rounds != 1 || *flags.Format != "text" {
		t.Fatalf("bad defaults: prime=%s rounds=%d format=%s", *flags.Prime, *flags.Rounds, *flags.Format)
	}
}

func TestParseFlagsAliases(t *testing.T) {
	flags, explicit := mustParse(t, "-p", "1e8", "-r", "3", "-o", "json", "-c", "/tmp/x.yaml", "-v")
	if *flags.Prime != "1e8" || !explicit["prime"] {
		t.Errorf("-p not folded into --prime: %s %v", *flags.Prime, explicit)
	}
	if *flags.Rounds != 3 || !explicit["rounds"] {
		t.Errorf("-r not folded into --rounds")
	}
	if *flags.Format != "json" || !explicit["format"] {
		t.Errorf("-o not folded into --format")
	}
	if *flags.ConfigFile != "/tmp/x.yaml" || !explicit["config-file"] {
		t.Errorf("-c not folded into --config-file")
	}
	if !*flags.Version {
		t.Errorf("-v not folded into --version")
	}
}

func TestParseFlagsRejectsPositionals(t *testing.T) {
	if _, _, err := ParseFlags(NewFlagSet("test", io.Discard), []string{"1000"}); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, _, err := ParseFlags(NewFlagSet("test", io.Discard), []string{"--sieves", "4"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestApplyExplicitFlags(t *testing.T) {
	flags, explicit := mustParse(t, "--prime", "500", "--log-level", "debug")
	cfg := config.DefaultConfig()
	cfg.Default.Format = "yaml"
	ApplyExplicitFlags(&cfg, flags, explicit)
	if cfg.Default.Prime != "500" || cfg.Default.LogLevel != "debug" {
		t.Fatalf("explicit flags not applied: %+v", cfg.Default)
	}
	// format was not given on the command line, so the config value stands
	if cfg.Default.Format != "yaml" {
		t.Fatalf("implicit flag overrode config: %+v", cfg.Default)
	}
}

func TestParseBound(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"1000000", 1000000},
		{"1e6", 1000000},
		{"1.0e6", 1000000},
		{"1E10", 10000000000},
		{"99.9", 99},
		{" 42 ", 42},
		{"1", 1},
	}
	for _, c := range cases {
		got, err := ParseBound(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseBound(%q) = (%d, %v), want %d", c.in, got, err, c.want)
		}
	}
}

func TestParseBoundFallbacks(t *testing.T) {
	for _, in := range []string{"0", "-5", "0.5", "-1e3", "-inf", "-1e400"} {
		got, err := ParseBound(in)
		if !errors.Is(err, ErrNonPositiveBound) || got != DefaultBound {
			t.Errorf("ParseBound(%q) = (%d, %v), want default with ErrNonPositiveBound", in, got, err)
		}
	}
	for _, in := range []string{"", "abc", "1e6x"} {
		if _, err := ParseBound(in); !errors.Is(err, ErrInvalidBound) {
			t.Errorf("ParseBound(%q): want ErrInvalidBound, got %v", in, err)
		}
	}
	for _, in := range []string{"1e400", "inf", "NaN", "2e19"} {
		if _, err := ParseBound(in); !errors.Is(err, ErrBoundOutOfRange) {
			t.Errorf("ParseBound(%q): want ErrBoundOutOfRange, got %v", in, err)
		}
	}
}
