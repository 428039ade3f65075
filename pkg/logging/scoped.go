// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package logging

import (
	"primesieve/pkg/logger"
)

// Common scoped loggers for consistent logging throughout the application
var (
	AppLogger    = logger.NewScopedLogger("app", "")
	ConfigLogger = logger.NewScopedLogger("config", "")
	RunnerLogger = logger.NewScopedLogger("runner", "")
	OutputLogger = logger.NewScopedLogger("output", "")

	// System operations
	SystemLogger = logger.NewScopedLogger("system", "")
	MemoryLogger = logger.NewScopedLogger("system/memory", "")
)

// GetSubLogger returns a scoped logger with a sub-component
func GetSubLogger(component, subComponent string) *logger.ScopedLogger {
	scope := component
	if subComponent != "" {
		scope = component + "/" + subComponent
	}
	return logger.NewScopedLogger(scope, "")
}
