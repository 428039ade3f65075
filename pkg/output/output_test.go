// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"primesieve/pkg/runner"
)

func oneRound() runner.Report {
	return runner.Report{
		Bound:  1000000,
		Primes: 78498,
		Rounds: []runner.Round{{Index: 1, Primes: 78498, Elapsed: 4200 * time.Microsecond}},
	}
}

func render(t *testing.T, format, locale string, r runner.Report) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := New(format, &buf, Options{Locale: locale})
	if err != nil {
		t.Fatalf("new %s writer: %v", format, err)
	}
	if err := w.Begin(r.Bound); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := w.Write(r); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func TestTextEnglishSeparators(t *testing.T) {
	got := render(t, "text", "en-US", oneRound())
	want := "Counting primes up to 1,000,000\n78,498 primes found\n0.004 s used\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextPOSIXLocaleName(t *testing.T) {
	got := render(t, "text", "en_US.UTF-8", oneRound())
	if !strings.HasPrefix(got, "Counting primes up to 1,000,000\n") {
		t.Fatalf("POSIX locale not honored: %q", got)
	}
}

func TestTextGermanSeparators(t *testing.T) {
	got := render(t, "text", "de-DE", oneRound())
	if !strings.Contains(got, "Counting primes up to 1.000.000\n") || !strings.Contains(got, "78.498 primes found\n") {
		t.Fatalf("unexpected german output: %q", got)
	}
}

func TestTextNoSeparators(t *testing.T) {
	got := render(t, "text", LocaleNone, oneRound())
	want := "Counting primes up to 1000000\n78498 primes found\n0.004 s used\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextRounds(t *testing.T) {
	r := runner.Report{
		Bound:  100,
		Primes: 25,
		Rounds: []runner.Round{
			{Index: 1, Primes: 25, Elapsed: 3 * time.Millisecond},
			{Index: 2, Primes: 25, Elapsed: 1 * time.Millisecond},
		},
	}
	got := render(t, "text", LocaleNone, r)
	want := "Counting primes up to 100\n25 primes found\n" +
		"round 1/2: 0.003 s used\nround 2/2: 0.001 s used\n" +
		"best 0.001 s, mean 0.002 s\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	var res Result
	if err := json.Unmarshal([]byte(render(t, "json", "", oneRound())), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Bound != 1000000 || res.Primes != 78498 || len(res.Rounds) != 1 || res.Rounds[0].Seconds != 0.004 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestYAML(t *testing.T) {
	out := render(t, "yaml", "", oneRound())
	if !strings.Contains(out, "primes: 78498\n") {
		t.Fatalf("unexpected yaml: %q", out)
	}
	var res Result
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.BestSeconds != 0.004 || res.MeanSeconds != 0.004 {
		t.Fatalf("unexpected timings: %+v", res)
	}
}

func TestUnknownFormatAndLocale(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{}, Options{})
	if err == nil || !strings.Contains(err.Error(), "json, text, yaml") {
		t.Fatalf("unknown format should list the registered ones, got %v", err)
	}
	if _, err := New("text", &bytes.Buffer{}, Options{Locale: "not a locale!"}); err == nil {
		t.Fatalf("expected error for bad locale")
	}
}

func TestFormats(t *testing.T) {
	if got := strings.Join(Formats(), ","); got != "json,text,yaml" {
		t.Fatalf("formats = %s", got)
	}
}

func TestNewPrinterLocales(t *testing.T) {
	for _, c := range []struct{ locale, want string }{
		{"", "1,234,567"},
		{"en_US.UTF-8", "1,234,567"},
		{"de-DE", "1.234.567"},
		{"C", "1234567"},
		{LocaleNone, "1234567"},
	} {
		p, err := newPrinter(c.locale)
		if err != nil {
			t.Fatalf("newPrinter(%q): %v", c.locale, err)
		}
		if got := p.Sprintf("%d", 1234567); got != c.want {
			t.Errorf("newPrinter(%q) printed %q, want %q", c.locale, got, c.want)
		}
	}
}
