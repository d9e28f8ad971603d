package erat_test

import (
	"errors"
	"testing"

	"github.com/Ismael-VC/primesieve/internal/erat"
	"github.com/Ismael-VC/primesieve/internal/wheel"
)

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}

	return true
}

func primesBetween(lo, hi uint64) []uint64 {
	var out []uint64
	for n := lo; n <= hi; n++ {
		if isPrime(n) {
			out = append(out, n)
		}
	}

	return out
}

// crossOffWholeRange drives one tier over [0, stop] in segments of
// sieveBytes bytes, with every sieving prime <= sqrt(stop) added to
// that single tier, and checks the surviving bits against trial
// division. The final segment is shorter, exercising the tiers'
// behavior at the logical buffer end.
func crossOffWholeRange(t *testing.T, tier erat.Tier, stop uint64, sieveBytes int) {
	t.Helper()

	for _, p := range primesBetween(7, isqrt(stop)) {
		tier.AddSievingPrime(p, 0)
	}

	span := uint64(sieveBytes) * wheel.NumbersPerByte
	low := uint64(0)
	buf := make([]byte, sieveBytes)

	check := func(buf []byte, low uint64) {
		for i, b := range buf {
			for k := 0; k < 8; k++ {
				n := low + uint64(i)*wheel.NumbersPerByte + wheel.BitValues[k]
				if n > stop {
					continue
				}
				set := b&(1<<k) != 0
				if set != isPrime(n) {
					t.Fatalf("bit for %d = %v, prime = %v", n, set, isPrime(n))
				}
			}
		}
	}

	for low+span+1 < stop {
		for i := range buf {
			buf[i] = 0xff
		}
		tier.CrossOff(buf, low)
		check(buf, low)
		low += span
	}

	// Final, shorter segment.
	rem := wheel.ByteRemainder(stop)
	lastLen := int((stop-rem-low)/wheel.NumbersPerByte) + 1
	last := buf[:lastLen]
	for i := range last {
		last[i] = 0xff
	}
	tier.CrossOff(last, low)
	check(last, low)
}

func isqrt(n uint64) uint64 {
	r := uint64(0)
	for (r+1)*(r+1) <= n {
		r++
	}

	return r
}

func TestSmallCrossOff(t *testing.T) {
	t.Parallel()

	tier, err := erat.NewSmall(2390, 16, isqrt(2390))
	if err != nil {
		t.Fatalf("NewSmall: %v", err)
	}
	crossOffWholeRange(t, tier, 2390, 16)
}

func TestMediumCrossOff(t *testing.T) {
	t.Parallel()

	tier, err := erat.NewMedium(2390, 16, isqrt(2390))
	if err != nil {
		t.Fatalf("NewMedium: %v", err)
	}
	crossOffWholeRange(t, tier, 2390, 16)
}

func TestBigCrossOff(t *testing.T) {
	t.Parallel()

	tier, err := erat.NewBig(2390, 16, isqrt(2390))
	if err != nil {
		t.Fatalf("NewBig: %v", err)
	}
	crossOffWholeRange(t, tier, 2390, 16)
}

// TestBigCrossOffWideRange uses a larger range so next multiples land
// several segments ahead and the bucket ring must cascade.
func TestBigCrossOffWideRange(t *testing.T) {
	t.Parallel()

	const stop = 50000
	tier, err := erat.NewBig(stop, 8, isqrt(stop))
	if err != nil {
		t.Fatalf("NewBig: %v", err)
	}
	crossOffWholeRange(t, tier, stop, 8)
}

func TestTierConstructionFailsOnExcessiveLimit(t *testing.T) {
	t.Parallel()

	if _, err := erat.NewSmall(1<<62, 1024, 1<<40); !errors.Is(err, erat.ErrCapacity) {
		t.Errorf("NewSmall: got %v, want ErrCapacity", err)
	}
	if _, err := erat.NewMedium(1<<62, 1024, 1<<40); !errors.Is(err, erat.ErrCapacity) {
		t.Errorf("NewMedium: got %v, want ErrCapacity", err)
	}
	if _, err := erat.NewBig(1<<62, 1024, 1<<40); !errors.Is(err, erat.ErrCapacity) {
		t.Errorf("NewBig: got %v, want ErrCapacity", err)
	}
}
