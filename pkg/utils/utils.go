// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// ErrorHandler writes a user-visible error line to w.
func ErrorHandler(w io.Writer, context string, err error) {
	switch {
	case err != nil && context != "":
		fmt.Fprintf(w, "ERROR: %s: %v\n", context, err)
	case err != nil:
		fmt.Fprintf(w, "ERROR: %v\n", err)
	case context != "":
		fmt.Fprintf(w, "ERROR: %s\n", context)
	}
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers like `head` close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
