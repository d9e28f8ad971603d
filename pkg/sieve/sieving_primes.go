package sieve

// sievingPrimes calls yield for every prime in [from, to] in
// increasing order. to is at most sqrt(MaxStop) < 2^32, so a plain
// windowed odd/even sieve over base primes <= 65536 suffices to
// bootstrap the wheel sieve's tiers.
func sievingPrimes(from, to uint64, yield func(uint64)) {
	if from < 2 {
		from = 2
	}
	if from > to {
		return
	}

	root := isqrt(to)
	composite := make([]bool, root+1)
	var base []uint64
	for i := uint64(2); i <= root; i++ {
		if composite[i] {
			continue
		}
		base = append(base, i)
		for j := i * i; j <= root; j += i {
			composite[j] = true
		}
	}

	const window = uint64(1) << 18

	seg := make([]bool, window)
	for lo := from; lo <= to; lo += window {
		hi := lo + window - 1
		if hi > to {
			hi = to
		}
		n := hi - lo + 1

		for i := range seg[:n] {
			seg[i] = false
		}

		for _, p := range base {
			if p*p > hi {
				break
			}
			first := p * p
			if first < lo {
				first = (lo + p - 1) / p * p
			}
			for m := first; m <= hi; m += p {
				seg[m-lo] = true
			}
		}

		for i := uint64(0); i < n; i++ {
			if !seg[i] {
				yield(lo + i)
			}
		}
	}
}
