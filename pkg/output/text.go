// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"fmt"
	"io"

	"primesieve/pkg/runner"
)

func init() { Register("text", newTextWriter) }

type textWriter struct {
	w io.Writer
	p sprinter
}

func newTextWriter(w io.Writer, opts Options) (Writer, error) {
	p, err := newPrinter(opts.Locale)
	if err != nil {
		return nil, err
	}
	return &textWriter{w: w, p: p}, nil
}

func (t *textWriter) Begin(bound uint64) error {
	_, err := fmt.Fprintln(t.w, t.p.Sprintf("Counting primes up to %d", bound))
	return err
}

func (t *textWriter) Write(r runner.Report) error {
	if _, err := fmt.Fprintln(t.w, t.p.Sprintf("%d primes found", r.Primes)); err != nil {
		return err
	}
	if len(r.Rounds) == 1 {
		_, err := fmt.Fprintln(t.w, t.p.Sprintf("%.3f s used", Seconds(r.Rounds[0].Elapsed)))
		return err
	}
	for _, rd := range r.Rounds {
		line := t.p.Sprintf("round %d/%d: %.3f s used", rd.Index, len(r.Rounds), Seconds(rd.Elapsed))
		if _, err := fmt.Fprintln(t.w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.w, t.p.Sprintf("best %.3f s, mean %.3f s", Seconds(r.Best()), Seconds(r.Mean())))
	return err
}
