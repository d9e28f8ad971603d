package sieve

import (
	"math"

	"github.com/Ismael-VC/primesieve/internal/presieve"
)

// MaxStop is the largest supported stop value. It keeps the
// next-multiple arithmetic of the crossing-off tiers away from uint64
// overflow: a sieving prime p < 2^32 may step up to 6p past stop.
const MaxStop uint64 = math.MaxUint64 - 10*(1<<32) + 1

// Hardcoded implementation limits.
const (
	// minStart is the smallest sievable start; the wheel-30 encoding
	// cannot represent 2, 3 and 5.
	minStart = 7

	// Sieve buffer bounds in KiB. Requested sizes are rounded down to
	// a power of two, then clamped.
	minSieveKiB = 1
	maxSieveKiB = 4096

	// defaultSieveKiB roughly matches a per-core L1 data cache.
	defaultSieveKiB = 32

	// defaultPreSieveLimit is the default largest prime folded into
	// the pre-sieve pattern.
	defaultPreSieveLimit = 19
)

// Tier threshold factors: a tier stays efficient while its primes'
// average multiples-per-segment match its crossing strategy, which
// scales with the buffer size.
const (
	// Small tier handles primes up to sieveSize * 3/2.
	factorSmallNum, factorSmallDen = 3, 2

	// Medium tier handles primes up to sieveSize * 6.
	factorMedium = 6
)

// Options configure a [Sieve].
type Options struct {
	// Start is the lower bound of the range, inclusive.
	//
	// Must be >= 7 and <= Stop. Use the package-level helpers for
	// ranges that begin below 7.
	Start uint64

	// Stop is the upper bound of the range, inclusive.
	//
	// Must be <= [MaxStop].
	Stop uint64

	// SieveSizeKiB is the requested sieve buffer size in KiB.
	//
	// Rounded down to the nearest power of two and clamped to
	// [1, 4096]. 0 means the default (32).
	//
	// The buffer size only affects performance, never which primes
	// are produced.
	SieveSizeKiB int

	// PreSieveLimit is the largest prime whose multiples are removed
	// by pattern copy instead of per-prime crossing.
	//
	// Clamped to [13, 19]. 0 means the default (19).
	PreSieveLimit int
}

// sieveBytes returns the coerced buffer size in bytes.
func (o Options) sieveBytes() int {
	kib := o.SieveSizeKiB
	if kib == 0 {
		kib = defaultSieveKiB
	}
	kib = floorPow2(kib)
	if kib < minSieveKiB {
		kib = minSieveKiB
	}
	if kib > maxSieveKiB {
		kib = maxSieveKiB
	}

	return kib * 1024
}

// preSieveLimit returns the requested pre-sieve limit with the default
// applied; the provider clamps it into its own supported range.
func (o Options) preSieveLimit() uint64 {
	if o.PreSieveLimit <= 0 {
		return defaultPreSieveLimit
	}
	if o.PreSieveLimit < presieve.MinLimit {
		return presieve.MinLimit
	}

	return uint64(o.PreSieveLimit)
}
