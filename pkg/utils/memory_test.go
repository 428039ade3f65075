// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"
	"syscall"
	"testing"
)

func TestParseMemoryLimit(t *testing.T) {
	cases := []struct {
		in   string
		want MemoryLimit
	}{
		{"", MemoryLimit{Auto: true}},
		{"auto", MemoryLimit{Auto: true}},
		{"off", MemoryLimit{}},
		{"0", MemoryLimit{}},
		{"512MiB", MemoryLimit{Bytes: 512 << 20}},
		{"2GB", MemoryLimit{Bytes: 2000000000}},
		{"1024", MemoryLimit{Bytes: 1024}},
	}
	for _, c := range cases {
		got, err := ParseMemoryLimit(c.in)
		if err != nil {
			t.Errorf("ParseMemoryLimit(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMemoryLimit(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	if _, err := ParseMemoryLimit("lots"); err == nil {
		t.Fatalf("expected error for garbage limit")
	}
}

func TestCheckMemoryFixedLimit(t *testing.T) {
	limit := MemoryLimit{Bytes: 1000}
	if err := CheckMemory(1000, limit); err != nil {
		t.Fatalf("need == limit should pass: %v", err)
	}
	err := CheckMemory(1001, limit)
	if !errors.Is(err, ErrInsufficientMemory) {
		t.Fatalf("want ErrInsufficientMemory, got %v", err)
	}
	var me *MemoryError
	if !errors.As(err, &me) || me.Need != 1001 || me.Available != 1000 {
		t.Fatalf("bad MemoryError: %#v", err)
	}
}

func TestCheckMemoryUnlimited(t *testing.T) {
	if err := CheckMemory(1<<62, MemoryLimit{}); err != nil {
		t.Fatalf("unlimited should pass: %v", err)
	}
}

func TestAvailableMemory(t *testing.T) {
	n, ok := AvailableMemory()
	if runtime.GOOS != "linux" {
		if ok {
			t.Fatalf("expected unknown memory on %s", runtime.GOOS)
		}
		return
	}
	if !ok || n == 0 {
		t.Fatalf("sysinfo returned (%d, %v)", n, ok)
	}
	// nothing has 2^62 bytes free
	if err := CheckMemory(1<<62, MemoryLimit{Auto: true}); !errors.Is(err, ErrInsufficientMemory) {
		t.Fatalf("want ErrInsufficientMemory, got %v", err)
	}
}

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	ErrorHandler(&buf, "loading config", errors.New("boom"))
	ErrorHandler(&buf, "", errors.New("bare"))
	ErrorHandler(&buf, "context only", nil)
	want := "ERROR: loading config: boom\nERROR: bare\nERROR: context only\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatalf("pipe errors not recognized")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("other")) {
		t.Fatalf("false positive")
	}
}
