// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package output renders sieve reports.
//
// Writers are registered per format name. The text writer reproduces the
// classic three-line console output; json and yaml emit a Result document.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"primesieve/pkg/logging"
	"primesieve/pkg/runner"
)

// LocaleNone disables thousands separators.
const LocaleNone = "none"

// Options configure a writer.
type Options struct {
	Locale string
}

// Writer renders one report. Begin is called before the sieve runs.
type Writer interface {
	Begin(bound uint64) error
	Write(report runner.Report) error
}

// Factory builds a writer on w.
type Factory func(w io.Writer, opts Options) (Writer, error)

var writers = map[string]Factory{}

// Register adds or replaces the factory for format.
func Register(format string, f Factory) { writers[strings.ToLower(format)] = f }

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the writer registered for format.
func New(format string, w io.Writer, opts Options) (Writer, error) {
	f, ok := writers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (must be %s)", format, strings.Join(Formats(), ", "))
	}
	logging.OutputLogger.Debug("Using %s writer, locale %q", format, opts.Locale)
	return f(w, opts)
}

// Result is the json/yaml document for a report.
type Result struct {
	Bound       uint64        `json:"bound" yaml:"bound"`
	Primes      uint64        `json:"primes" yaml:"primes"`
	Rounds      []RoundResult `json:"rounds" yaml:"rounds"`
	BestSeconds float64       `json:"best_seconds" yaml:"best_seconds"`
	MeanSeconds float64       `json:"mean_seconds" yaml:"mean_seconds"`
}

type RoundResult struct {
	Round   int     `json:"round" yaml:"round"`
	Primes  uint64  `json:"primes" yaml:"primes"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

// NewResult converts a report to its document form.
func NewResult(r runner.Report) Result {
	res := Result{
		Bound:       r.Bound,
		Primes:      r.Primes,
		Rounds:      make([]RoundResult, 0, len(r.Rounds)),
		BestSeconds: Seconds(r.Best()),
		MeanSeconds: Seconds(r.Mean()),
	}
	for _, rd := range r.Rounds {
		res.Rounds = append(res.Rounds, RoundResult{Round: rd.Index, Primes: rd.Primes, Seconds: Seconds(rd.Elapsed)})
	}
	return res
}

// Seconds truncates d to whole milliseconds and returns it in seconds.
func Seconds(d time.Duration) float64 {
	return float64(d.Milliseconds()) / 1000.0
}

type sprinter interface {
	Sprintf(format string, a ...interface{}) string
}

type plainPrinter struct{}

func (plainPrinter) Sprintf(format string, a ...interface{}) string { return fmt.Sprintf(format, a...) }

// localePrinter narrows message.Printer, whose Sprintf takes a
// message.Reference key, to a plain format string.
type localePrinter struct {
	p *message.Printer
}

func (lp localePrinter) Sprintf(format string, a ...interface{}) string {
	return lp.p.Sprintf(format, a...)
}

// newPrinter returns a number printer for a BCP 47 or POSIX style locale
// ("en-US", "de_DE.UTF-8"). LocaleNone and "C" print plain digits.
func newPrinter(locale string) (sprinter, error) {
	tag := strings.TrimSpace(locale)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	switch strings.ToLower(tag) {
	case LocaleNone, "c", "posix":
		return plainPrinter{}, nil
	case "":
		tag = "en-US"
	}
	lang, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return localePrinter{p: message.NewPrinter(lang)}, nil
}
