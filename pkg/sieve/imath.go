package sieve

import (
	"math"
	"math/bits"
)

// isqrt returns floor(sqrt(n)), correcting the float64 approximation
// at its precision edge.
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}

	return r
}

// floorPow2 returns the largest power of two <= n, or 0 for n < 1.
func floorPow2(n int) int {
	if n < 1 {
		return 0
	}

	return 1 << (bits.Len(uint(n)) - 1)
}
