// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package utils

import (
	"golang.org/x/sys/unix"

	"primesieve/pkg/logging"
)

// AvailableMemory returns free plus buffer RAM as reported by sysinfo(2).
func AvailableMemory() (uint64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		logging.MemoryLogger.Debug("sysinfo failed: %v", err)
		return 0, false
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return (uint64(info.Freeram) + uint64(info.Bufferram)) * unit, true
}
