// Package sieve generates prime numbers with a segmented, wheel-30
// accelerated sieve of Eratosthenes.
//
// The sieve covers a 64-bit range [start, stop] with start >= 7. It
// owns a fixed-size bit-packed buffer, sieves the range one segment at
// a time and hands each finished segment to a consumer callback. A set
// bit is a prime; consumers decode bits back into integers with
// [Segment.Primes] or count them with [Segment.Count].
//
// # Basic Usage
//
//	s, err := sieve.New(sieve.Options{Start: 7, Stop: 1000})
//	if err != nil {
//	    // handle [ErrInvalidRange]/[ErrResourceExhausted]
//	}
//	err = s.Run(func(seg sieve.Segment) error {
//	    seg.Primes()(func(p uint64) bool {
//	        fmt.Println(p)
//	        return true
//	    })
//	    return nil
//	})
//
// The package-level helpers [Count], [Primes] and [ForEach] wrap this
// flow, accept start values below 7 (2, 3 and 5 are emitted directly)
// and pick sensible defaults.
//
// # Segments
//
// Segment buffers are reused: a consumer must not retain Segment.Bits
// beyond the callback. The callback runs synchronously; returning an
// error aborts the sieve and Run returns that error unchanged.
//
// # Concurrency
//
// A Sieve is single-threaded and runs each operation to completion.
// Independent Sieve instances share no mutable state, so disjoint
// sub-ranges may be sieved on separate goroutines and merged by the
// caller.
package sieve
