// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"primesieve/pkg/logging"
)

// ErrInsufficientMemory marks a sieve that would not fit in the memory limit.
var ErrInsufficientMemory = errors.New("insufficient memory")

// MemoryLimit is the number of bytes a sieve may allocate.
type MemoryLimit struct {
	// Auto probes available memory at check time.
	Auto bool
	// Bytes is a fixed ceiling; zero with Auto unset means unlimited.
	Bytes uint64
}

// Unlimited reports whether no ceiling applies.
func (m MemoryLimit) Unlimited() bool { return !m.Auto && m.Bytes == 0 }

func (m MemoryLimit) String() string {
	switch {
	case m.Auto:
		return "auto"
	case m.Bytes == 0:
		return "off"
	default:
		return humanize.IBytes(m.Bytes)
	}
}

// MemoryError reports a marker array that needs more than is available.
type MemoryError struct {
	Need      uint64
	Available uint64
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%v: sieve needs %s, limit is %s",
		ErrInsufficientMemory, humanize.IBytes(e.Need), humanize.IBytes(e.Available))
}

func (e *MemoryError) Unwrap() error { return ErrInsufficientMemory }

// ParseMemoryLimit parses "auto", a disabled value ("0", "off", "disabled",
// "none") or a byte size such as "512MiB" or "2GB".
func ParseMemoryLimit(s string) (MemoryLimit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MemoryLimit{Auto: true}, nil
	case "0", "off", "disabled", "none":
		return MemoryLimit{}, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return MemoryLimit{}, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	return MemoryLimit{Bytes: n}, nil
}

// CheckMemory returns a *MemoryError when need exceeds limit. An auto limit
// on a platform where available memory is unknown always passes.
func CheckMemory(need uint64, limit MemoryLimit) error {
	if limit.Unlimited() {
		logging.MemoryLogger.Debug("Memory guard disabled, need %s", humanize.IBytes(need))
		return nil
	}

	available := limit.Bytes
	if limit.Auto {
		avail, ok := AvailableMemory()
		if !ok {
			logging.MemoryLogger.Verbose("Available memory unknown on this platform, skipping check")
			return nil
		}
		available = avail
	}

	logging.MemoryLogger.Debug("Sieve needs %s, limit %s (%s)", humanize.IBytes(need), humanize.IBytes(available), limit)
	if need > available {
		return &MemoryError{Need: need, Available: available}
	}
	return nil
}
