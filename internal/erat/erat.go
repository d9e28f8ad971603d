// Package erat implements the three crossing-off tiers of the
// segmented sieve of Eratosthenes.
//
// Each tier removes the multiples of a disjoint range of sieving
// primes from the current segment buffer and is tuned for a different
// multiples-per-segment density:
//
//   - [Small]: many multiples per segment, crossed off with eight
//     fixed-mask strides per prime.
//   - [Medium]: a few multiples per segment, crossed off by walking
//     the prime's wheel factor chain.
//   - [Big]: at most a couple of multiples per segment, kept in
//     per-segment buckets so only due primes are touched.
//
// Buffers are 30-aligned wheel-30 bit arrays as defined by the wheel
// package. Tiers share the segment window implicitly: CrossOff must be
// called exactly once per segment, in tier order, with the segment's
// aligned low bound.
package erat

import "errors"

// ErrCapacity indicates that a tier cannot allocate the bookkeeping
// implied by the requested prime range.
var ErrCapacity = errors.New("erat: bookkeeping capacity exceeded")

// maxPrimeBookkeepingBytes bounds the memory a single tier may commit
// to for per-prime state. It is a guardrail against configurations far
// outside what the package is tested with, not a RAM estimate.
const maxPrimeBookkeepingBytes = uint64(1) << 34

// Tier is the common contract of the three crossing-off algorithms.
//
// The orchestrator owns a closed set of at most three instances and
// dispatches each sieving prime to exactly one of them.
type Tier interface {
	// Limit returns the upper bound of the sieving primes this
	// instance handles. It may be clamped below the construction
	// hint.
	Limit() uint64

	// AddSievingPrime registers a prime <= Limit. low is the aligned
	// low bound of the first segment that will be sieved.
	AddSievingPrime(prime, low uint64)

	// CrossOff clears the bits of this tier's multiples that fall
	// inside the segment starting at low. buf carries the segment's
	// logical length; the final segment may be shorter than the
	// configured sieve size.
	CrossOff(buf []byte, low uint64)
}

// estimatePrimeBytes is a coarse upper bound on per-prime bookkeeping
// for primes up to limit, used by the capacity guardrail.
func estimatePrimeBytes(limit uint64, bytesPerPrime uint64) uint64 {
	if limit < 2 {
		return 0
	}
	// pi(x) < x/2 for the magnitudes involved; good enough for a
	// guardrail.
	return limit / 2 * bytesPerPrime
}
