package erat

import "github.com/Ismael-VC/primesieve/internal/wheel"

// smallPrime tracks one dense sieving prime. The multiples of a prime
// p that share a wheel residue form an arithmetic progression with a
// byte stride of exactly p, so the prime's state is eight byte offsets
// into the (conceptually unbounded) sieve, one per wheel spoke, each
// paired with a fixed clear mask.
type smallPrime struct {
	prime uint64
	off   [8]uint64
	mask  [8]uint8
}

// Small crosses off the multiples of primes with many multiples per
// segment. Offsets are kept relative to the current segment and
// carried over by subtracting the segment length after each pass.
type Small struct {
	stop   uint64
	limit  uint64
	primes []smallPrime
}

// NewSmall creates the small tier for primes up to min(limitHint,
// sqrt(stop)).
func NewSmall(stop uint64, sieveSize int, limitHint uint64) (*Small, error) {
	if estimatePrimeBytes(limitHint, 80) > maxPrimeBookkeepingBytes {
		return nil, ErrCapacity
	}

	return &Small{stop: stop, limit: limitHint}, nil
}

func (s *Small) Limit() uint64 { return s.limit }

func (s *Small) AddSievingPrime(prime, low uint64) {
	next, fi, ok := wheel.FirstMultiple(prime, low, s.stop)
	if !ok {
		return
	}

	var sp smallPrime
	sp.prime = prime
	for k := 0; k < 8; k++ {
		off := next - low
		r := off % wheel.NumbersPerByte
		sp.off[k] = off/wheel.NumbersPerByte - uint64(wheel.ByteBack[r])
		sp.mask[k] = wheel.ClearMask[r]
		next += prime * wheel.Delta[fi]
		fi = (fi + 1) % 8
	}

	s.primes = append(s.primes, sp)
}

func (s *Small) CrossOff(buf []byte, low uint64) {
	n := uint64(len(buf))
	for i := range s.primes {
		sp := &s.primes[i]
		for k := 0; k < 8; k++ {
			b := sp.off[k]
			mask := sp.mask[k]
			for b < n {
				buf[b] &= mask
				b += sp.prime
			}
			sp.off[k] = b - n
		}
	}
}
