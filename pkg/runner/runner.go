// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package runner

import (
	"primesieve/pkg/logging"
	"primesieve/pkg/sieve"

	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrAllocation reports a marker array the runtime refused to allocate.
var ErrAllocation = errors.New("cannot allocate sieve")

// CountFunc counts the primes below bound.
type CountFunc func(ctx context.Context, bound uint64) (uint64, error)

// Round is one sieve run.
type Round struct {
	Index   int
	Primes  uint64
	Elapsed time.Duration
}

// Report is the result of all rounds for one bound.
type Report struct {
	Bound  uint64
	Primes uint64
	Rounds []Round
}

// Best returns the fastest round time.
func (r Report) Best() time.Duration {
	var best time.Duration
	for i, rd := range r.Rounds {
		if i == 0 || rd.Elapsed < best {
			best = rd.Elapsed
		}
	}
	return best
}

// Mean returns the average round time.
func (r Report) Mean() time.Duration {
	if len(r.Rounds) == 0 {
		return 0
	}
	var total time.Duration
	for _, rd := range r.Rounds {
		total += rd.Elapsed
	}
	return total / time.Duration(len(r.Rounds))
}

// Runner runs the sieve for a bound a fixed number of times
type Runner struct {
	bound  uint64
	rounds int
	count  CountFunc
	now    func() time.Time
}

// New creates a new runner instance. rounds below 1 run once.
func New(bound uint64, rounds int) *Runner {
	if rounds < 1 {
		rounds = 1
	}
	return &Runner{
		bound:  bound,
		rounds: rounds,
		count:  sieve.CountPrimesBelowContext,
		now:    time.Now,
	}
}

// Run executes every round, stopping early if ctx is canceled.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	defer logging.RunnerLogger.TraceFunction("Run")()
	report := Report{Bound: r.bound}

	if r.rounds == 1 {
		logging.RunnerLogger.Verbose("Running in one-shot mode")
	} else {
		logging.RunnerLogger.Verbose("Running %d rounds", r.rounds)
	}

	for i := 1; i <= r.rounds; i++ {
		rd, err := r.runRound(ctx, i)
		if err != nil {
			return report, err
		}
		if i == 1 {
			report.Primes = rd.Primes
		} else if rd.Primes != report.Primes {
			return report, fmt.Errorf("round %d counted %d primes, round 1 counted %d", i, rd.Primes, report.Primes)
		}
		report.Rounds = append(report.Rounds, rd)
	}

	logging.RunnerLogger.Debug("Best %v, mean %v over %d rounds", report.Best(), report.Mean(), len(report.Rounds))
	return report, nil
}

func (r *Runner) runRound(ctx context.Context, index int) (rd Round, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		// make panics with "makeslice: len out of range" for oversized arrays
		if re, ok := p.(runtime.Error); ok && strings.Contains(re.Error(), "makeslice") {
			err = fmt.Errorf("round %d: %w: %v", index, ErrAllocation, re)
			return
		}
		panic(p)
	}()

	logging.RunnerLogger.Debug("Round %d/%d: counting primes below %d", index, r.rounds, r.bound)

	t0 := r.now()
	n, err := r.count(ctx, r.bound)
	if err != nil {
		return Round{}, fmt.Errorf("round %d: %w", index, err)
	}
	elapsed := r.now().Sub(t0)

	logging.RunnerLogger.Debug("Round %d/%d: %d primes in %v", index, r.rounds, n, elapsed)
	return Round{Index: index, Primes: n, Elapsed: elapsed}, nil
}
