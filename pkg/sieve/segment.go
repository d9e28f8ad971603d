package sieve

import (
	"encoding/binary"
	"math/bits"

	"github.com/Ismael-VC/primesieve/internal/wheel"
)

// Segment is one finished sieve window. Bits is the wheel-30 encoded
// buffer: bit k of byte j represents the number
// Low + j*30 + BitValues()[k], and a set bit is a prime in
// [start, stop]. High is the largest number representable in the
// window.
//
// Bits aliases the orchestrator's buffer and is only valid for the
// duration of the [Consumer] call.
type Segment struct {
	Bits []byte
	Low  uint64
	High uint64
}

// Seq is the iterator type returned by [Segment.Primes]. It matches
// the shape of iter.Seq[uint64] so callers can range over it; the
// package avoids depending on iter directly.
type Seq func(yield func(uint64) bool)

// Primes returns the segment's primes in increasing order, decoded via
// the de Bruijn bitscan table one 64-bit word at a time.
func (seg Segment) Primes() Seq {
	return func(yield func(uint64) bool) {
		for i := 0; i < len(seg.Bits); i += 8 {
			var w uint64
			if i+8 <= len(seg.Bits) {
				w = binary.LittleEndian.Uint64(seg.Bits[i:])
			} else {
				for j, b := range seg.Bits[i:] {
					w |= uint64(b) << (8 * j)
				}
			}

			base := seg.Low + uint64(i)*wheel.NumbersPerByte
			for w != 0 {
				if !yield(base + wheel.NextBitValue(&w)) {
					return
				}
			}
		}
	}
}

// Count returns the number of primes in the segment.
func (seg Segment) Count() uint64 {
	var n uint64

	i := 0
	for ; i+8 <= len(seg.Bits); i += 8 {
		n += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(seg.Bits[i:])))
	}
	for ; i < len(seg.Bits); i++ {
		n += uint64(bits.OnesCount8(seg.Bits[i]))
	}

	return n
}

// BitValues returns the table mapping each bit position of a sieve
// byte to the number it represents relative to the byte's 30-block.
// Shared, immutable, safe for all instances and goroutines.
func BitValues() [8]uint64 { return wheel.BitValues }

// BruijnBitValues returns the de Bruijn bitscan table mapping a
// 64-bit sieve word's lowest set bit to the value it represents
// relative to the word's first byte.
func BruijnBitValues() [64]uint64 { return wheel.BruijnBitValues }
