package sieve

import (
	"fmt"

	"github.com/Ismael-VC/primesieve/internal/erat"
	"github.com/Ismael-VC/primesieve/internal/presieve"
	"github.com/Ismael-VC/primesieve/internal/wheel"
)

// Consumer receives each finished segment, in range order. The
// Segment's buffer is reused for the next segment and must not be
// retained. Returning a non-nil error aborts the sieve; [Sieve.Run]
// propagates it unchanged.
type Consumer func(seg Segment) error

// Sieve is the segmentation orchestrator: it owns the sieve buffer,
// the segment window and the crossing-off tiers for one [start, stop]
// range. Create with [New], drive with [Run], then discard.
type Sieve struct {
	start    uint64
	stop     uint64
	sqrtStop uint64

	preSieve *presieve.PreSieve
	small    *erat.Small
	medium   *erat.Medium
	big      *erat.Big

	sieve       []byte
	sieveSize   int // logical bytes; shrinks for the final segment
	segmentLow  uint64
	segmentHigh uint64

	done bool
}

// New validates opts, builds the tier chain and allocates the sieve
// buffer. Construction failures return [ErrInvalidRange] or
// [ErrResourceExhausted] with no partial state retained.
func New(opts Options) (*Sieve, error) {
	switch {
	case opts.Start < minStart:
		return nil, fmt.Errorf("%w: start must be >= %d, got %d", ErrInvalidRange, minStart, opts.Start)
	case opts.Start > opts.Stop:
		return nil, fmt.Errorf("%w: start %d > stop %d", ErrInvalidRange, opts.Start, opts.Stop)
	case opts.Stop > MaxStop:
		return nil, fmt.Errorf("%w: stop %d exceeds %d", ErrInvalidRange, opts.Stop, MaxStop)
	}

	size := opts.sieveBytes()

	s := &Sieve{
		start:     opts.Start,
		stop:      opts.Stop,
		sqrtStop:  isqrt(opts.Stop),
		preSieve:  presieve.New(opts.preSieveLimit()),
		sieveSize: size,
	}
	s.segmentLow = wheel.Align(s.start)
	s.segmentHigh = s.segmentLow + uint64(size)*wheel.NumbersPerByte + 1

	if err := s.initTiers(size); err != nil {
		return nil, err
	}
	s.addSievingPrimes()

	s.sieve = make([]byte, size)

	return s, nil
}

// initTiers builds the small -> medium -> big chain. Each tier exists
// only if sqrt(stop) exceeds the limit already covered by the previous
// stage; the big tier, when reached, always extends to sqrt(stop).
func (s *Sieve) initTiers(size int) error {
	smallLimit := min(uint64(size)*factorSmallNum/factorSmallDen, s.sqrtStop)
	mediumLimit := min(uint64(size)*factorMedium, s.sqrtStop)

	if s.sqrtStop <= s.preSieve.Limit() {
		// Pre-sieving alone already excludes every composite in the
		// range.
		return nil
	}

	small, err := erat.NewSmall(s.stop, size, smallLimit)
	if err != nil {
		return fmt.Errorf("%w: small tier: %v", ErrResourceExhausted, err)
	}
	s.small = small

	if s.sqrtStop > s.small.Limit() {
		medium, err := erat.NewMedium(s.stop, size, mediumLimit)
		if err != nil {
			return fmt.Errorf("%w: medium tier: %v", ErrResourceExhausted, err)
		}
		s.medium = medium

		if s.sqrtStop > s.medium.Limit() {
			big, err := erat.NewBig(s.stop, size, s.sqrtStop)
			if err != nil {
				return fmt.Errorf("%w: big tier: %v", ErrResourceExhausted, err)
			}
			s.big = big
		}
	}

	return nil
}

// addSievingPrimes generates the primes in (preSieveLimit, sqrt(stop)]
// and dispatches each to the tier owning its magnitude.
func (s *Sieve) addSievingPrimes() {
	if s.small == nil {
		return
	}

	sievingPrimes(s.preSieve.Limit()+1, s.sqrtStop, func(p uint64) {
		switch {
		case p <= s.small.Limit():
			s.small.AddSievingPrime(p, s.segmentLow)
		case s.medium != nil && p <= s.medium.Limit():
			s.medium.AddSievingPrime(p, s.segmentLow)
		default:
			s.big.AddSievingPrime(p, s.segmentLow)
		}
	})
}

// Start returns the inclusive lower bound of the range.
func (s *Sieve) Start() uint64 { return s.start }

// Stop returns the inclusive upper bound of the range.
func (s *Sieve) Stop() uint64 { return s.stop }

// SegmentLow returns the aligned low bound of the segment currently
// materialized in the buffer.
func (s *Sieve) SegmentLow() uint64 { return s.segmentLow }

// SegmentHigh returns the largest number representable in the current
// segment.
func (s *Sieve) SegmentHigh() uint64 { return s.segmentHigh }

// Run sieves the whole range, invoking consume once per finished
// segment including the shortened final one. It returns the consumer's
// error unchanged if the consumer aborts. A Sieve runs once; further
// calls return [ErrDone].
func (s *Sieve) Run(consume Consumer) error {
	if s.done {
		return ErrDone
	}
	s.done = true

	span := uint64(s.sieveSize) * wheel.NumbersPerByte
	for s.segmentHigh < s.stop {
		if err := s.sieveSegment(consume); err != nil {
			return err
		}
		s.segmentLow += span
		s.segmentHigh += span
	}

	return s.finish(consume)
}

// sieveSegment runs one pre-sieve/cross-off pass and delivers the
// buffer.
func (s *Sieve) sieveSegment(consume Consumer) error {
	s.preSieveSegment()
	s.crossOffMultiples()

	return consume(Segment{
		Bits: s.sieve[:s.sieveSize],
		Low:  s.segmentLow,
		High: s.segmentHigh,
	})
}

// preSieveSegment fills the buffer with the small-prime composite
// pattern, then trims the first segment's bits below start. If start
// itself is within the pre-sieve pattern, byte 0 is reset first: the
// pattern clears small primes as "multiples" of themselves, and every
// wheel candidate in [7, 31] is in fact prime.
func (s *Sieve) preSieveSegment() {
	buf := s.sieve[:s.sieveSize]
	s.preSieve.Apply(buf, s.segmentLow)

	if s.segmentLow <= s.start {
		if s.start <= s.preSieve.Limit() {
			buf[0] = 0xff
		}
		rem := wheel.ByteRemainder(s.start)
		i := 0
		for wheel.BitValues[i] < rem {
			i++
		}
		buf[0] &= 0xff << i
	}
}

// crossOffMultiples applies the tiers in increasing-magnitude order.
// By construction a tier exists only if its predecessor does.
func (s *Sieve) crossOffMultiples() {
	if s.small == nil {
		return
	}

	buf := s.sieve[:s.sieveSize]
	s.small.CrossOff(buf, s.segmentLow)
	if s.medium != nil {
		s.medium.CrossOff(buf, s.segmentLow)
		if s.big != nil {
			s.big.CrossOff(buf, s.segmentLow)
		}
	}
}

// finish sieves the final, possibly shorter segment: the logical
// buffer length is recomputed so the window ends one wheel block past
// stop, bits above stop are masked out and the bytes up to the next
// multiple of 8 are zeroed so word-sized bit scans never see stale
// content.
func (s *Sieve) finish(consume Consumer) error {
	rem := wheel.ByteRemainder(s.stop)
	s.sieveSize = int((s.stop-rem-s.segmentLow)/wheel.NumbersPerByte) + 1
	s.segmentHigh = s.segmentLow + uint64(s.sieveSize)*wheel.NumbersPerByte + 1

	s.preSieveSegment()
	s.crossOffMultiples()

	var i uint
	for i = 0; i < 8; i++ {
		if wheel.BitValues[i] > rem {
			break
		}
	}
	s.sieve[s.sieveSize-1] &^= byte(0xff) << i

	for j := s.sieveSize; j%8 != 0; j++ {
		s.sieve[j] = 0
	}

	return consume(Segment{
		Bits: s.sieve[:s.sieveSize],
		Low:  s.segmentLow,
		High: s.segmentHigh,
	})
}
