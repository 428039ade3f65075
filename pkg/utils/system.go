// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import "os"

// IsRunningUnderSystemd detects if the application is running under systemd
func IsRunningUnderSystemd() bool {
	invocation := os.Getenv("INVOCATION_ID") != ""
	journal := os.Getenv("JOURNAL_STREAM") != ""
	return invocation || journal
}
