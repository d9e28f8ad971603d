package erat

import "github.com/Ismael-VC/primesieve/internal/wheel"

// mediumPrime tracks one sieving prime by its next composite and the
// wheel index of that composite's factor.
type mediumPrime struct {
	prime uint64
	next  uint64
	fi    uint8
}

// Medium crosses off the multiples of primes with only a few multiples
// per segment by walking each prime's factor chain until it leaves the
// segment window.
type Medium struct {
	stop   uint64
	limit  uint64
	primes []mediumPrime
}

// NewMedium creates the medium tier for primes up to min(limitHint,
// sqrt(stop)).
func NewMedium(stop uint64, sieveSize int, limitHint uint64) (*Medium, error) {
	if estimatePrimeBytes(limitHint, 24) > maxPrimeBookkeepingBytes {
		return nil, ErrCapacity
	}

	return &Medium{stop: stop, limit: limitHint}, nil
}

func (m *Medium) Limit() uint64 { return m.limit }

func (m *Medium) AddSievingPrime(prime, low uint64) {
	next, fi, ok := wheel.FirstMultiple(prime, low, m.stop)
	if !ok {
		return
	}

	m.primes = append(m.primes, mediumPrime{prime: prime, next: next, fi: fi})
}

func (m *Medium) CrossOff(buf []byte, low uint64) {
	// The last representable number of the segment is
	// low + len*30 + 1 (residue 31 of the last byte), inclusive.
	high := low + uint64(len(buf))*wheel.NumbersPerByte + 1

	for i := range m.primes {
		mp := &m.primes[i]
		next, fi := mp.next, mp.fi
		for next <= high {
			wheel.Clear(buf, next-low)
			next += mp.prime * wheel.Delta[fi]
			fi = (fi + 1) % 8
		}
		mp.next, mp.fi = next, fi
	}
}
