package erat

import "github.com/Ismael-VC/primesieve/internal/wheel"

// bigPrime tracks one sieving prime whose multiples are segments
// apart.
type bigPrime struct {
	prime uint64
	next  uint64
	fi    uint8
}

// Big crosses off the multiples of the largest sieving primes. Primes
// are bucketed by the segment containing their next multiple, so a
// segment pass only touches primes that are actually due. The bucket
// ring is bounded; primes whose next multiple lies beyond the ring
// horizon park in the last bucket and cascade forward when reached.
type Big struct {
	stop    uint64
	limit   uint64
	span    uint64 // numbers per full segment
	cur     int
	buckets [][]bigPrime
}

const (
	minBuckets = 2
	maxBuckets = 4096
)

// NewBig creates the big tier for primes up to limit, which is always
// sqrt(stop). sieveSize fixes the segment span used for bucketing.
func NewBig(stop uint64, sieveSize int, limit uint64) (*Big, error) {
	if estimatePrimeBytes(limit, 24) > maxPrimeBookkeepingBytes {
		return nil, ErrCapacity
	}

	span := uint64(sieveSize) * wheel.NumbersPerByte

	// Consecutive wheel multiples of p are at most 6p apart, so a due
	// prime re-buckets within 6*limit/span segments.
	nb := 6*limit/span + 2
	if nb < minBuckets {
		nb = minBuckets
	}
	if nb > maxBuckets {
		nb = maxBuckets
	}

	return &Big{
		stop:    stop,
		limit:   limit,
		span:    span,
		buckets: make([][]bigPrime, nb),
	}, nil
}

// Limit reports sqrt(stop); the big tier covers everything above the
// medium tier with no clamp of its own.
func (b *Big) Limit() uint64 { return b.limit }

func (b *Big) AddSievingPrime(prime, low uint64) {
	next, fi, ok := wheel.FirstMultiple(prime, low, b.stop)
	if !ok {
		return
	}

	b.put(bigPrime{prime: prime, next: next, fi: fi}, low, b.cur)
}

// put files bp into the bucket for the segment containing bp.next,
// where low is the aligned low bound of the segment at ring index
// base. Deltas beyond the ring cap at the last bucket and cascade.
func (b *Big) put(bp bigPrime, low uint64, base int) {
	var d uint64
	if bp.next > low+b.span+1 {
		d = (bp.next - low - 2) / b.span
		if d > uint64(len(b.buckets)-1) {
			d = uint64(len(b.buckets) - 1)
		}
	}

	i := (base + int(d)) % len(b.buckets)
	b.buckets[i] = append(b.buckets[i], bp)
}

func (b *Big) CrossOff(buf []byte, low uint64) {
	due := b.buckets[b.cur]
	b.buckets[b.cur] = nil
	n := uint64(len(buf))

	for _, bp := range due {
		// Cross off within the full segment span; the final segment
		// may be logically shorter, so clears are bounds-checked.
		for bp.next <= low+b.span+1 {
			off := bp.next - low
			r := off % wheel.NumbersPerByte
			i := off/wheel.NumbersPerByte - uint64(wheel.ByteBack[r])
			if i < n {
				buf[i] &= wheel.ClearMask[r]
			}
			bp.next += bp.prime * wheel.Delta[bp.fi]
			bp.fi = (bp.fi + 1) % 8
		}

		b.put(bp, low+b.span, (b.cur+1)%len(b.buckets))
	}

	b.cur = (b.cur + 1) % len(b.buckets)
}
