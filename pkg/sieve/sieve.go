// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

// Package sieve counts primes below a bound with the Sieve of Eratosthenes.
//
// The package is pure: it does no I/O, holds no global state and never logs.
// Memory guarding is left to the caller, see MarkerBytes and CheckBound.
package sieve

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// MaxBound is the largest bound whose marker array can be addressed by an int.
const MaxBound = uint64(math.MaxInt) - 1

// ErrBoundTooLarge is returned by CheckBound for bounds above MaxBound.
var ErrBoundTooLarge = errors.New("bound too large")

// CheckBound reports whether bound can be sieved on this platform.
func CheckBound(bound uint64) error {
	if bound > MaxBound {
		return fmt.Errorf("%w: %d exceeds %d", ErrBoundTooLarge, bound, MaxBound)
	}
	return nil
}

// MarkerBytes returns the size in bytes of the marker array for bound.
func MarkerBytes(bound uint64) uint64 {
	if bound < 2 {
		return 0
	}
	return bound + 1
}

// CountPrimesBelow returns the number of primes strictly less than bound.
//
// It allocates bound+1 bytes for the duration of the call and panics if bound
// exceeds MaxBound.
func CountPrimesBelow(bound uint64) uint64 {
	n, _ := count(context.Background(), bound)
	return n
}

// CountPrimesBelowContext is CountPrimesBelow with a cancellation check once
// per outer sieve step. On cancellation it returns ctx.Err().
func CountPrimesBelowContext(ctx context.Context, bound uint64) (uint64, error) {
	return count(ctx, bound)
}

func count(ctx context.Context, bound uint64) (uint64, error) {
	if bound < 2 {
		return 0, nil
	}

	numbers := make([]bool, bound+1)
	numbers[0], numbers[1] = true, true

	sqrtBound := isqrt(bound)

	p := uint64(2)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		for i := p * p; i <= bound; i += p {
			numbers[i] = true
			// i+p would wrap past the top of uint64
			if i > math.MaxUint64-p {
				break
			}
		}

		p++
		for p <= sqrtBound && numbers[p] {
			p++
		}
		if p > sqrtBound {
			break
		}
	}

	var result uint64
	for _, composite := range numbers[2:bound] {
		if !composite {
			result++
		}
	}
	return result, nil
}

// isqrt returns floor(sqrt(n)). math.Sqrt alone rounds up for some n near 2^52
// and above, so the estimate is corrected in integers.
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
