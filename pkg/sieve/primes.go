package sieve

import "fmt"

// smallPrimes are below the first wheel-representable number and are
// handled outside the sieve proper.
var smallPrimes = [3]uint64{2, 3, 5}

// ForEach calls fn for every prime in [start, stop] in increasing
// order, using default options. start may be below 7. fn may abort the
// iteration by returning an error, which ForEach returns unchanged.
func ForEach(start, stop uint64, fn func(uint64) error) error {
	return ForEachOpts(Options{Start: start, Stop: stop}, fn)
}

// ForEachOpts is [ForEach] with explicit options. opts.Start may be
// below 7; the non-wheel primes 2, 3 and 5 are emitted directly.
func ForEachOpts(opts Options, fn func(uint64) error) error {
	if opts.Start > opts.Stop {
		return fmt.Errorf("%w: start %d > stop %d", ErrInvalidRange, opts.Start, opts.Stop)
	}

	for _, p := range smallPrimes {
		if p >= opts.Start && p <= opts.Stop {
			if err := fn(p); err != nil {
				return err
			}
		}
	}

	if opts.Stop < minStart {
		return nil
	}
	if opts.Start < minStart {
		opts.Start = minStart
	}

	s, err := New(opts)
	if err != nil {
		return err
	}

	return s.Run(func(seg Segment) error {
		var abort error
		seg.Primes()(func(p uint64) bool {
			abort = fn(p)

			return abort == nil
		})

		return abort
	})
}

// Count returns the number of primes in [start, stop]. start may be
// below 7.
func Count(start, stop uint64) (uint64, error) {
	return CountOpts(Options{Start: start, Stop: stop})
}

// CountOpts is [Count] with explicit options, using the popcount fast
// path instead of decoding individual primes.
func CountOpts(opts Options) (uint64, error) {
	if opts.Start > opts.Stop {
		return 0, fmt.Errorf("%w: start %d > stop %d", ErrInvalidRange, opts.Start, opts.Stop)
	}

	var n uint64
	for _, p := range smallPrimes {
		if p >= opts.Start && p <= opts.Stop {
			n++
		}
	}

	if opts.Stop < minStart {
		return n, nil
	}
	if opts.Start < minStart {
		opts.Start = minStart
	}

	s, err := New(opts)
	if err != nil {
		return 0, err
	}

	err = s.Run(func(seg Segment) error {
		n += seg.Count()

		return nil
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// Primes returns all primes in [start, stop] in increasing order.
// start may be below 7. The result can be large; prefer [ForEach] or
// [Count] for wide ranges.
func Primes(start, stop uint64) ([]uint64, error) {
	var out []uint64
	err := ForEach(start, stop, func(p uint64) error {
		out = append(out, p)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
