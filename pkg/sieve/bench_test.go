package sieve_test

import (
	"testing"

	"github.com/Ismael-VC/primesieve/pkg/sieve"
)

func BenchmarkCount1e7(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := sieve.Count(0, 10_000_000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCountOffset1e9(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := sieve.Count(1_000_000_000, 1_010_000_000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunSegments(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s, err := sieve.New(sieve.Options{Start: 7, Stop: 10_000_000, SieveSizeKiB: 32})
		if err != nil {
			b.Fatal(err)
		}
		err = s.Run(func(seg sieve.Segment) error { return nil })
		if err != nil {
			b.Fatal(err)
		}
	}
}
