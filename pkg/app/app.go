// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"primesieve/pkg/cli"
	"primesieve/pkg/config"
	"primesieve/pkg/logger"
	"primesieve/pkg/logging"
	"primesieve/pkg/output"
	"primesieve/pkg/runner"
	"primesieve/pkg/service"
	"primesieve/pkg/sieve"
	"primesieve/pkg/utils"

	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Name is the program name used in usage and version output.
const Name = "primesieve"

var Version = "dev"

// Exit codes
const (
	ExitOK          = 0
	ExitFatal       = 1 // resource exhaustion or internal failure
	ExitUsage       = 2 // bad flags or configuration
	ExitOutput      = 3 // writing the report failed
	ExitInterrupted = 130
)

// App represents the main application
type App struct {
	flags         *cli.Flags
	explicitFlags map[string]bool
	config        config.Config
	stdout        *bufio.Writer
	stderr        io.Writer
}

// New creates a new App instance
func New() *App {
	return &App{}
}

// Run parses args, counts the primes and writes the report. It returns the
// process exit code.
func (a *App) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a.stdout = bufio.NewWriter(stdout)
	a.stderr = stderr

	log := logger.GetLogger()
	log.SetOutput(stderr)
	defer log.Close()

	fs := cli.NewFlagSet(Name, stderr)
	flags, explicit, err := cli.ParseFlags(fs, args)
	if err != nil {
		// flag prints its own error and the usage for malformed flags
		if errors.Is(err, cli.ErrUnexpectedArgument) {
			utils.ErrorHandler(stderr, "", err)
			cli.PrintUsage(stderr, Name)
		}
		return ExitUsage
	}
	a.flags, a.explicitFlags = flags, explicit

	if *a.flags.Help {
		cli.PrintUsage(a.stdout, Name)
		return a.flush(ExitOK)
	}
	if *a.flags.Version {
		fmt.Fprintf(a.stdout, "%s version %s\n", Name, Version)
		return a.flush(ExitOK)
	}

	// Initialize logging from the command line so config loading can be traced
	log.SetLevel(*a.flags.LogLevel)
	log.SetShowTimestamps(*a.flags.LogTimestamps)

	if code := a.loadConfig(); code != ExitOK {
		return code
	}
	profile := a.config.Default

	if code := a.configureLogging(profile); code != ExitOK {
		return code
	}

	bound, err := cli.ParseBound(string(profile.Prime))
	switch {
	case errors.Is(err, cli.ErrNonPositiveBound):
		logging.AppLogger.Warn("%v", err)
	case err != nil:
		utils.ErrorHandler(stderr, "Parsing --prime", err)
		return ExitUsage
	}

	if code := a.checkResources(bound, profile.MemoryLimit); code != ExitOK {
		return code
	}

	w, err := output.New(profile.Format, a.stdout, output.Options{Locale: profile.Locale})
	if err != nil {
		utils.ErrorHandler(stderr, "Creating output writer", err)
		return ExitUsage
	}

	if err := w.Begin(bound); err != nil {
		return a.outputError(err)
	}
	// the header is visible while the sieve runs
	if err := a.stdout.Flush(); err != nil {
		return a.outputError(err)
	}

	report, err := runner.New(bound, profile.Rounds).Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			logging.AppLogger.Warn("Interrupted: %v", err)
			return ExitInterrupted
		case errors.Is(err, runner.ErrAllocation):
			utils.ErrorHandler(stderr, "Cannot count primes", err)
			return ExitFatal
		default:
			utils.ErrorHandler(stderr, "Counting primes", err)
			return ExitFatal
		}
	}

	if err := w.Write(report); err != nil {
		return a.outputError(err)
	}
	return a.flush(ExitOK)
}

// loadConfig loads the configuration file, applies the selected profile and
// then the explicit command line flags.
func (a *App) loadConfig() int {
	cfg, err := service.ValidateAndLoadConfig(*a.flags.ConfigFile)
	if err != nil {
		utils.ErrorHandler(a.stderr, "", err)
		return ExitUsage
	}

	cfg, err = service.SelectProfile(cfg, *a.flags.SelectedProfile)
	if err != nil {
		utils.ErrorHandler(a.stderr, "", err)
		return ExitUsage
	}

	cli.ApplyExplicitFlags(&cfg, a.flags, a.explicitFlags)
	if err := config.ValidateConfig(&cfg); err != nil {
		utils.ErrorHandler(a.stderr, "Validating options", err)
		return ExitUsage
	}

	a.config = cfg
	return ExitOK
}

func (a *App) configureLogging(p config.Profile) int {
	log := logger.GetLogger()
	log.SetLevel(p.LogLevel)
	// journald stamps every line already
	underSystemd := utils.IsRunningUnderSystemd()
	if underSystemd && p.LogTimestamps {
		logging.SystemLogger.Verbose("Running under systemd, leaving timestamps to the journal")
	}
	log.SetShowTimestamps(p.LogTimestamps && !underSystemd)
	if err := log.Configure(p.LogType, p.LogFile, a.stderr); err != nil {
		utils.ErrorHandler(a.stderr, "Configuring logging", err)
		return ExitUsage
	}
	logging.AppLogger.Debug("Effective profile: %+v", p)
	return ExitOK
}

// checkResources rejects bounds whose marker array cannot be allocated.
func (a *App) checkResources(bound uint64, memoryLimit string) int {
	if err := sieve.CheckBound(bound); err != nil {
		utils.ErrorHandler(a.stderr, "Cannot count primes", err)
		return ExitFatal
	}

	limit, err := utils.ParseMemoryLimit(memoryLimit)
	if err != nil {
		utils.ErrorHandler(a.stderr, "", err)
		return ExitUsage
	}
	if err := utils.CheckMemory(sieve.MarkerBytes(bound), limit); err != nil {
		utils.ErrorHandler(a.stderr, "Cannot count primes", err)
		return ExitFatal
	}
	return ExitOK
}

func (a *App) flush(code int) int {
	if err := a.stdout.Flush(); err != nil {
		return a.outputError(err)
	}
	return code
}

func (a *App) outputError(err error) int {
	if utils.IsBrokenPipe(err) {
		return ExitOK
	}
	utils.ErrorHandler(a.stderr, "Writing output", err)
	return ExitOutput
}
