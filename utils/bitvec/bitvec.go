package bitvec

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// BitVec is a fixed-width bit vector backed by an array of 64-bit words.
// The bit-width is explicit runtime state attached to the value; bit 0 is
// the least significant bit. All operations are value-based: mutators
// return a fresh vector and leave their operands untouched.
type BitVec struct {
	width int
	words []uint64
}

// New creates a zeroed bit vector of the given width.
func New(width int) BitVec {
	if width <= 0 {
		panic(fmt.Sprintf("bitvec: illegal width %d", width))
	}
	return BitVec{width, make([]uint64, (width+wordBits-1)/wordBits)}
}

// FromUint64 creates a bit vector of the given width holding the low
// `width` bits of v. Bits of v beyond the width are discarded.
func FromUint64(width int, v uint64) BitVec {
	b := New(width)
	b.words[0] = v
	return b.truncate()
}

// Width returns the bit-width of the vector.
func (b BitVec) Width() int {
	return b.width
}

func (b BitVec) checkIndex(i int) {
	if i < 0 || i >= b.width {
		panic(fmt.Sprintf("bitvec: bit index %d out of range [0, %d)", i, b.width))
	}
}

func checkWidthMatch(b1, b2 BitVec, op string) {
	if b1.width != b2.width {
		panic(fmt.Sprintf("bitvec: width mismatch for %s: %d vs. %d", op, b1.width, b2.width))
	}
}

// clone copies the vector such that the copy's words may be mutated freely.
func (b BitVec) clone() BitVec {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return BitVec{b.width, words}
}

// truncate clears the bits of the top word beyond the width.
// Must only be called on vectors that own their words.
func (b BitVec) truncate() BitVec {
	if rem := b.width % wordBits; rem != 0 {
		b.words[len(b.words)-1] &= (1 << rem) - 1
	}
	return b
}

// Bit tests the bit at position i.
func (b BitVec) Bit(i int) bool {
	b.checkIndex(i)
	return b.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// SetBit yields a copy of the vector with bit i set.
func (b BitVec) SetBit(i int) BitVec {
	b.checkIndex(i)
	r := b.clone()
	r.words[i/wordBits] |= 1 << (i % wordBits)
	return r
}

// ClearBit yields a copy of the vector with bit i cleared.
func (b BitVec) ClearBit(i int) BitVec {
	b.checkIndex(i)
	r := b.clone()
	r.words[i/wordBits] &^= 1 << (i % wordBits)
	return r
}

// And computes the bitwise conjunction of two vectors of equal width.
func (b1 BitVec) And(b2 BitVec) BitVec {
	checkWidthMatch(b1, b2, "&")
	r := b1.clone()
	for i := range r.words {
		r.words[i] &= b2.words[i]
	}
	return r
}

// Or computes the bitwise disjunction of two vectors of equal width.
func (b1 BitVec) Or(b2 BitVec) BitVec {
	checkWidthMatch(b1, b2, "|")
	r := b1.clone()
	for i := range r.words {
		r.words[i] |= b2.words[i]
	}
	return r
}

// Xor computes the bitwise exclusive disjunction of two vectors of equal width.
func (b1 BitVec) Xor(b2 BitVec) BitVec {
	checkWidthMatch(b1, b2, "^")
	r := b1.clone()
	for i := range r.words {
		r.words[i] ^= b2.words[i]
	}
	return r
}

// Not computes the bitwise complement, masked to the width.
func (b BitVec) Not() BitVec {
	r := b.clone()
	for i := range r.words {
		r.words[i] = ^r.words[i]
	}
	return r.truncate()
}

// Shl computes a logical shift left by n. Vacated low bits are zero-filled
// and bits shifted beyond the width are discarded.
func (b BitVec) Shl(n int) BitVec {
	if n < 0 {
		panic(fmt.Sprintf("bitvec: negative shift amount %d", n))
	}
	if n >= b.width {
		return New(b.width)
	}
	r := New(b.width)
	wordShift, bitShift := n/wordBits, n%wordBits
	for i := len(r.words) - 1; i >= wordShift; i-- {
		r.words[i] = b.words[i-wordShift] << bitShift
		if bitShift > 0 && i > wordShift {
			r.words[i] |= b.words[i-wordShift-1] >> (wordBits - bitShift)
		}
	}
	return r.truncate()
}

// Lshr computes a logical shift right by n. Vacated high bits are zero-filled.
func (b BitVec) Lshr(n int) BitVec {
	if n < 0 {
		panic(fmt.Sprintf("bitvec: negative shift amount %d", n))
	}
	if n >= b.width {
		return New(b.width)
	}
	r := New(b.width)
	wordShift, bitShift := n/wordBits, n%wordBits
	for i := 0; i+wordShift < len(b.words); i++ {
		r.words[i] = b.words[i+wordShift] >> bitShift
		if bitShift > 0 && i+wordShift+1 < len(b.words) {
			r.words[i] |= b.words[i+wordShift+1] << (wordBits - bitShift)
		}
	}
	return r
}

// Ashr computes an arithmetic shift right by n. Vacated high bits are
// filled with the vector's own top bit.
func (b BitVec) Ashr(n int) BitVec {
	if n < 0 {
		panic(fmt.Sprintf("bitvec: negative shift amount %d", n))
	}
	r := b.Lshr(n)
	if !b.Bit(b.width - 1) {
		return r
	}
	fill := b.width - n
	if fill < 0 {
		fill = 0
	}
	for i := fill; i < b.width; i++ {
		r.words[i/wordBits] |= 1 << (i % wordBits)
	}
	return r
}

// OnesCount returns the number of set bits.
func (b BitVec) OnesCount() (count int) {
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return
}

// IsZero checks whether no bit is set.
func (b BitVec) IsZero() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Eq checks two vectors of equal width for equality.
func (b1 BitVec) Eq(b2 BitVec) bool {
	checkWidthMatch(b1, b2, "=")
	for i := range b1.words {
		if b1.words[i] != b2.words[i] {
			return false
		}
	}
	return true
}

// Ult computes the unsigned less-than order between two vectors of equal width.
func (b1 BitVec) Ult(b2 BitVec) bool {
	checkWidthMatch(b1, b2, "<")
	for i := len(b1.words) - 1; i >= 0; i-- {
		if b1.words[i] != b2.words[i] {
			return b1.words[i] < b2.words[i]
		}
	}
	return false
}

// Uint64 returns the value of the vector as an unsigned integer.
// Only legal for widths of at most 64 bits.
func (b BitVec) Uint64() uint64 {
	if b.width > wordBits {
		panic(fmt.Sprintf("bitvec: width %d does not fit in a uint64", b.width))
	}
	return b.words[0]
}

// String renders the vector in binary with the most significant bit first.
func (b BitVec) String() string {
	var sb strings.Builder
	sb.Grow(b.width)
	for i := b.width - 1; i >= 0; i-- {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
