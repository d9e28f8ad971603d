package sieve

import "testing"

func TestSievingPrimes(t *testing.T) {
	t.Parallel()

	isPrime := func(n uint64) bool {
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

	var got []uint64
	sievingPrimes(14, 600000, func(p uint64) {
		got = append(got, p)
	})

	var want []uint64
	for n := uint64(14); n <= 600000; n++ {
		if isPrime(n) {
			want = append(want, n)
		}
	}

	if len(got) != len(want) {
		t.Fatalf("got %d primes, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("prime %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSievingPrimesEmptyAndTinyRanges(t *testing.T) {
	t.Parallel()

	var got []uint64
	sievingPrimes(20, 10, func(p uint64) { got = append(got, p) })
	if got != nil {
		t.Errorf("descending range yielded %v", got)
	}

	sievingPrimes(0, 10, func(p uint64) { got = append(got, p) })
	want := []uint64{2, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("primes up to 10: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("primes up to 10: got %v, want %v", got, want)
		}
	}
}
