// Package presieve provides a precomputed composite pattern for the
// smallest sieving primes.
//
// Instead of crossing off multiples of 7, 11, 13, ... in every
// segment, the pattern is generated once and copied over the sieve
// buffer. Its period is the product of all primes up to the configured
// limit, so the pattern tiles any 30-aligned buffer exactly.
package presieve

import "github.com/Ismael-VC/primesieve/internal/wheel"

// Limit bounds for the pre-sieve pattern. The upper bound is 19:
// 19# / 30 = 323,323 pattern bytes, while a limit of 23 would already
// need about 7.4 MiB per instance.
const (
	MinLimit = 13
	MaxLimit = 19
)

var patternPrimes = [5]uint64{7, 11, 13, 17, 19}

// PreSieve holds the composite pattern for primes <= Limit.
type PreSieve struct {
	limit   uint64
	period  uint64
	pattern []byte
}

// New builds the pattern for all primes up to limit. Limits outside
// [MinLimit, MaxLimit] are clamped.
func New(limit uint64) *PreSieve {
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	period := uint64(2 * 3 * 5)
	for _, p := range patternPrimes {
		if p <= limit {
			period *= p
		}
	}

	ps := &PreSieve{
		limit:   limit,
		period:  period,
		pattern: make([]byte, period/wheel.NumbersPerByte),
	}

	for i := range ps.pattern {
		ps.pattern[i] = 0xff
	}

	// Cross off every multiple p*f with f coprime to 30, including
	// f = 1: position p stands for p + k*period in later periods,
	// which is composite. The sieve restores the primes themselves
	// when trimming its first segment.
	for _, p := range patternPrimes {
		if p > limit {
			continue
		}

		f, fi := uint64(1), 0
		for p*f < period {
			wheel.Clear(ps.pattern, p*f)
			f += wheel.Delta[fi]
			fi = (fi + 1) % 8
		}
	}

	return ps
}

// Limit returns the largest prime whose multiples are guaranteed to be
// cleared by Apply. It may be below the limit passed to New.
func (ps *PreSieve) Limit() uint64 { return ps.limit }

// Apply overwrites buf with the composite pattern aligned to low,
// which must be a multiple of 30. Deterministic and idempotent for a
// given (len(buf), low mod period).
func (ps *PreSieve) Apply(buf []byte, low uint64) {
	off := int((low % ps.period) / wheel.NumbersPerByte)
	for i := 0; i < len(buf); {
		i += copy(buf[i:], ps.pattern[off:])
		off = 0
	}
}
