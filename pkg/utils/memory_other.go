// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package utils

// AvailableMemory is not implemented outside Linux.
func AvailableMemory() (uint64, bool) {
	return 0, false
}
