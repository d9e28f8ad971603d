// Package wheel implements the modulo-30 wheel encoding used by the
// segmented sieve.
//
// A block of 30 consecutive integers maps onto one byte: only the 8
// residues coprime to 30 can be prime, so each byte holds one flag per
// residue. The first representable number is 7, which rebases the
// residue set {1, 7, 11, 13, 17, 19, 23, 29} to the ordered values
// {7, 11, 13, 17, 19, 23, 29, 31}. A set bit means "still a candidate
// prime", a cleared bit means "known composite". Multiples of 2, 3 and
// 5 have no bit at all.
package wheel

// NumbersPerByte is the span of integers encoded by one sieve byte.
const NumbersPerByte = 30

// BitValues maps each of the 8 bit positions to the number it
// represents relative to the 30-block start of its byte.
var BitValues = [8]uint64{7, 11, 13, 17, 19, 23, 29, 31}

// deBruijn64 is the multiplier paired with BruijnBitValues. The index
// form is ((bits ^ (bits-1)) * deBruijn64) >> 58, i.e. the lowest set
// bit and everything below it.
const deBruijn64 = 0x3F08A4C6ACB9DBD

// BruijnBitValues maps the de Bruijn index of a 64-bit word's lowest
// set bit to the value that bit represents relative to the word's
// first byte. A word covers 8 bytes, hence values up to 7*30+31 = 241.
var BruijnBitValues = [64]uint64{
	7, 47, 11, 49, 67, 113, 13, 53,
	89, 71, 161, 101, 119, 187, 17, 233,
	59, 79, 91, 73, 133, 139, 163, 103,
	149, 121, 203, 169, 191, 217, 19, 239,
	43, 61, 109, 83, 157, 97, 181, 229,
	77, 131, 137, 143, 199, 167, 211, 41,
	107, 151, 179, 227, 127, 197, 209, 37,
	173, 223, 193, 31, 221, 29, 23, 241,
}

// ClearMask is indexed by n mod 30 and clears (AND) the bit encoding
// that residue. Residues not coprime to 30 keep 0xff; they never occur
// for numbers that have a bit.
var ClearMask = [30]uint8{
	0xff, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe, 0xff, 0xff,
	0xff, 0xfd, 0xff, 0xfb, 0xff, 0xff, 0xff, 0xf7, 0xff, 0xef,
	0xff, 0xff, 0xff, 0xdf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xbf,
}

// ByteBack is indexed by n mod 30. Residue 1 is encoded as value 31 of
// the previous byte, so its byte index must be reduced by one.
var ByteBack = [30]uint8{
	0, 1, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Delta is the gap from wheel residue i to residue i+1, used to step a
// factor from one coprime value to the next.
var Delta = [8]uint64{6, 4, 2, 4, 2, 4, 6, 2}

// nextAdd and nextIdx round an arbitrary value up to the next residue
// coprime to 30: for r = x mod 30, x+nextAdd[r] is the next coprime
// value and nextIdx[r] its wheel index.
var nextAdd = [30]uint64{
	1, 0, 5, 4, 3, 2, 1, 0, 3, 2,
	1, 0, 1, 0, 3, 2, 1, 0, 1, 0,
	3, 2, 1, 0, 5, 4, 3, 2, 1, 0,
}

var nextIdx = [30]uint8{
	0, 0, 1, 1, 1, 1, 1, 1, 2, 2,
	2, 2, 3, 3, 4, 4, 4, 4, 5, 5,
	6, 6, 6, 6, 7, 7, 7, 7, 7, 7,
}

// ByteRemainder returns n's offset within its wheel-30 byte, rebased
// so that residues 0 and 1 belong to the previous block (they are
// encoded as values 30 and 31).
func ByteRemainder(n uint64) uint64 {
	r := n % NumbersPerByte
	if r <= 1 {
		r += NumbersPerByte
	}

	return r
}

// Align returns the wheel-30 block boundary such that byte 0 of a
// buffer starting there represents numbers >= that boundary. The
// result is always a multiple of 30 and <= n.
func Align(n uint64) uint64 {
	return n - ByteRemainder(n)
}

// Clear unsets the candidate bit for the number at the given offset
// from a 30-aligned buffer start. The offset must be >= 7 and coprime
// to 30.
func Clear(buf []byte, off uint64) {
	r := off % NumbersPerByte
	buf[off/NumbersPerByte-uint64(ByteBack[r])] &= ClearMask[r]
}

// FirstMultiple returns the first composite n = prime*factor that a
// sieving prime must cross off at or above low: factor runs over the
// values coprime to 30 and is at least prime, so every composite is
// crossed exactly by its smallest wheel factor. The returned index is
// the wheel index of factor, for stepping with Delta. ok is false when
// no such multiple exists at or below stop.
func FirstMultiple(prime, low, stop uint64) (next uint64, idx uint8, ok bool) {
	factor := (low + 7 + prime - 1) / prime
	if factor < prime {
		factor = prime
	}

	r := factor % NumbersPerByte
	factor += nextAdd[r]

	next = prime * factor
	if next > stop {
		return 0, 0, false
	}

	return next, nextIdx[r], true
}

// NextBitValue extracts the lowest set bit of a 64-bit sieve word and
// returns the value it represents relative to the word's first byte.
// The word is updated with that bit cleared.
func NextBitValue(bits *uint64) uint64 {
	mask := *bits - 1
	v := BruijnBitValues[((*bits^mask)*deBruijn64)>>58]
	*bits &= mask

	return v
}
