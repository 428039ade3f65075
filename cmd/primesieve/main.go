// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"primesieve/pkg/app"

	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Version information
var (
	Version   = "development"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run leaves the exit code to App.Run, which maps an interrupted sieve to 130
// and keeps a completed run at 0 even if a signal arrives afterwards.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app.Version = Version
	return app.New().Run(ctx, args, stdout, stderr)
}
