// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"primesieve/pkg/config"
	"primesieve/pkg/logging"

	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultBound is used when no bound is given or the given one is not positive.
const DefaultBound uint64 = 1000000

var (
	ErrInvalidBound     = errors.New("invalid bound")
	ErrNonPositiveBound = errors.New("bound must be positive")
	ErrBoundOutOfRange  = errors.New("bound out of range")

	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// Flags represents all command line flags
type Flags struct {
	Version         *bool
	VersionShort    *bool
	Help            *bool
	HelpShort       *bool
	ConfigFile      *string
	ConfigFileShort *string
	ConfigFileC     *string
	SelectedProfile *string
	Prime           *string
	PrimeShort      *string
	Rounds          *int
	RoundsShort     *int
	Format          *string
	FormatShort     *string
	Locale          *string
	MemoryLimit     *string
	LogLevel        *string
	LogTimestamps   *bool
	LogType         *string
	LogFile         *string
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting.
func NewFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { PrintUsage(fs.Output(), name) }
	return fs
}

// ParseFlags registers all flags on fs and parses args. Besides the flags it
// returns the set of flag names given explicitly on the command line.
func ParseFlags(fs *flag.FlagSet, args []string) (*Flags, map[string]bool, error) {
	def := config.DefaultConfig().Default
	flags := &Flags{
		Version:         fs.Bool("version", false, "Print the version and exit"),
		VersionShort:    fs.Bool("v", false, "Print the version and exit (alias)"),
		Help:            fs.Bool("help", false, "Show help message and exit"),
		HelpShort:       fs.Bool("h", false, "Show help message and exit (alias)"),
		ConfigFile:      fs.String("config-file", config.DefaultConfigFile, "Path to the configuration file"),
		ConfigFileShort: fs.String("config", "", "Path to the configuration file (alias)"),
		ConfigFileC:     fs.String("c", "", "Path to the configuration file (alias)"),
		SelectedProfile: fs.String("profile", "", "Specify a profile to use from the configuration file"),
		Prime:           fs.String("prime", string(def.Prime), "Find primes less than this number, can be floating point (1.0e6)"),
		PrimeShort:      fs.String("p", "", "Find primes less than this number (alias)"),
		Rounds:          fs.Int("rounds", def.Rounds, "Number of times to run the sieve"),
		RoundsShort:     fs.Int("r", 0, "Number of times to run the sieve (alias)"),
		Format:          fs.String("format", def.Format, "Output format: text, json, or yaml"),
		FormatShort:     fs.String("o", "", "Output format (alias)"),
		Locale:          fs.String("locale", def.Locale, "Locale for thousands separators, or none"),
		MemoryLimit:     fs.String("memory-limit", def.MemoryLimit, "Memory ceiling for the sieve: auto, off, or a size like 2GiB"),
		LogLevel:        fs.String("log-level", def.LogLevel, "Set the logging level (error, warn, info, verbose, debug, trace)"),
		LogTimestamps:   fs.Bool("log-timestamps", def.LogTimestamps, "Enable timestamps in logs"),
		LogType:         fs.String("log-type", def.LogType, "Log output type: console, file, or both"),
		LogFile:         fs.String("log-file", def.LogFile, "Log file path if log-type is file or both"),
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnexpectedArgument, strings.Join(fs.Args(), " "))
	}

	// Track explicitly set flags
	explicitFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicitFlags[f.Name] = true
		logging.GetSubLogger("cli", "flag").Debug("Explicit flag detected: %s = %s", f.Name, f.Value.String())
	})

	normalizeAliases(flags, explicitFlags)
	return flags, explicitFlags, nil
}

// normalizeAliases folds short aliases into their long flag so callers only
// look at one name.
func normalizeAliases(flags *Flags, explicit map[string]bool) {
	if explicit["v"] {
		*flags.Version = true
	}
	if explicit["h"] {
		*flags.Help = true
	}
	if explicit["c"] {
		*flags.ConfigFile = *flags.ConfigFileC
		explicit["config-file"] = true
	}
	if explicit["config"] {
		*flags.ConfigFile = *flags.ConfigFileShort
		explicit["config-file"] = true
	}
	if explicit["p"] {
		*flags.Prime = *flags.PrimeShort
		explicit["prime"] = true
	}
	if explicit["r"] {
		*flags.Rounds = *flags.RoundsShort
		explicit["rounds"] = true
	}
	if explicit["o"] {
		*flags.Format = *flags.FormatShort
		explicit["format"] = true
	}
}

// ApplyExplicitFlags applies explicitly set command line flags to configuration
func ApplyExplicitFlags(cfg *config.Config, flags *Flags, explicitFlags map[string]bool) {
	if explicitFlags["prime"] {
		cfg.Default.Prime = config.Bound(*flags.Prime)
	}
	if explicitFlags["rounds"] {
		cfg.Default.Rounds = *flags.Rounds
	}
	if explicitFlags["format"] {
		cfg.Default.Format = *flags.Format
	}
	if explicitFlags["locale"] {
		cfg.Default.Locale = *flags.Locale
	}
	if explicitFlags["memory-limit"] {
		cfg.Default.MemoryLimit = *flags.MemoryLimit
	}
	if explicitFlags["log-level"] {
		cfg.Default.LogLevel = *flags.LogLevel
	}
	if explicitFlags["log-timestamps"] {
		cfg.Default.LogTimestamps = *flags.LogTimestamps
	}
	if explicitFlags["log-type"] {
		cfg.Default.LogType = *flags.LogType
	}
	if explicitFlags["log-file"] {
		cfg.Default.LogFile = *flags.LogFile
	}
}

// ParseBound parses a bound given in decimal or floating point notation and
// truncates it toward zero. A value that is not positive after truncation
// yields DefaultBound together with ErrNonPositiveBound.
func ParseBound(s string) (uint64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBound, s)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q", ErrBoundOutOfRange, s)
	}
	// checked before the range so -inf and -1e400 fall back as well
	f = math.Trunc(f)
	if f <= 0 {
		return DefaultBound, fmt.Errorf("%w: %q, using %d", ErrNonPositiveBound, s, DefaultBound)
	}
	if err != nil || math.IsInf(f, 1) || f >= math.Exp2(64) {
		return 0, fmt.Errorf("%w: %q", ErrBoundOutOfRange, s)
	}
	return uint64(f), nil
}
