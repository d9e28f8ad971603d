package presieve

import (
	"bytes"
	"testing"

	"github.com/Ismael-VC/primesieve/internal/wheel"
)

func TestLimitClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit uint64
		want  uint64
	}{
		{0, 13},
		{13, 13},
		{17, 17},
		{19, 19},
		{23, 19},
	}

	for _, testCase := range tests {
		got := New(testCase.limit).Limit()
		if got != testCase.want {
			t.Errorf("New(%d).Limit() = %d, want %d", testCase.limit, got, testCase.want)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	ps := New(13)
	low := uint64(5 * 30)

	a := make([]byte, 256)
	ps.Apply(a, low)
	b := make([]byte, 256)
	ps.Apply(b, low)
	if !bytes.Equal(a, b) {
		t.Error("two Apply calls with the same inputs differ")
	}

	// Re-applying over a dirtied buffer restores the pattern.
	a[17] = 0x00
	ps.Apply(a, low)
	if !bytes.Equal(a, b) {
		t.Error("Apply did not overwrite previous buffer contents")
	}
}

// TestApplyClearsExactlyTheSmallPrimeMultiples decodes an applied
// buffer and checks each bit against trial division by the pattern
// primes. Verified at pattern start and at an offset that wraps the
// pattern.
func TestApplyClearsExactlyTheSmallPrimeMultiples(t *testing.T) {
	t.Parallel()

	for _, limit := range []uint64{13, 17, 19} {
		ps := New(limit)
		for _, low := range []uint64{0, 990, ps.period*3 - 300} {
			buf := make([]byte, 512)
			ps.Apply(buf, low)

			for i, b := range buf {
				for k := 0; k < 8; k++ {
					n := low + uint64(i)*wheel.NumbersPerByte + wheel.BitValues[k]
					set := b&(1<<k) != 0

					composite := false
					for _, p := range []uint64{7, 11, 13, 17, 19} {
						if p <= limit && n%p == 0 {
							composite = true
						}
					}

					if set == composite {
						t.Fatalf("limit %d low %d: bit for %d = %v, composite-by-pattern %v",
							limit, low, n, set, composite)
					}
				}
			}
		}
	}
}
