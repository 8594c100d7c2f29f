package lattice

import (
	"fmt"

	"github.com/cs-au-dk/knownbits/utils/bitvec"
)

// MaxWidth bounds the bit-widths for which exhaustive enumeration of the
// abstract and concrete domains is supported. Both 3^MaxWidth and
// 2^MaxWidth stay far within the range of the uint64 counters used during
// enumeration; the bound exists to fail loudly long before they could wrap.
const MaxWidth = 16

// KnownBitsLattice is the lattice of three-valued bit vectors of a fixed
// width. Every bit of a member is known-zero, known-one or unknown, and
// members are ordered by precision: e1 ⊑ e2 iff the concretization of e1
// is included in the concretization of e2.
type KnownBitsLattice struct {
	lattice
	width int
	top   *KnownBits
}

var knownBitsLattices = map[int]*KnownBitsLattice{}

// KnownBits yields the known-bits lattice for the given bit-width.
func (latticeFactory) KnownBits(width int) *KnownBitsLattice {
	checkWidth(width)
	if lat, found := knownBitsLattices[width]; found {
		return lat
	}
	lat := &KnownBitsLattice{width: width}
	knownBitsLattices[width] = lat
	return lat
}

func checkWidth(width int) {
	if width <= 0 || width > MaxWidth {
		panic(fmt.Sprintf("illegal bit-width %d: must be in [1, %d]", width, MaxWidth))
	}
}

func (l *KnownBitsLattice) KnownBits() *KnownBitsLattice {
	return l
}

// Width is the bit-width shared by all members of the lattice.
func (l *KnownBitsLattice) Width() int {
	return l.width
}

// Top returns the ⊤ element, where every bit is unknown.
func (l *KnownBitsLattice) Top() Element {
	if l.top == nil {
		l.top = &KnownBits{
			element{l},
			bitvec.New(l.width),
			bitvec.New(l.width),
		}
	}
	return *l.top
}

// Bot cannot be invoked on the known-bits lattice. The conflict-free
// domain has no member with an empty concretization.
func (l *KnownBitsLattice) Bot() Element {
	panic(errUnsupportedOperation)
}

// Eq checks whether another lattice is the known-bits lattice of the same width.
func (l1 *KnownBitsLattice) Eq(l2 Lattice) bool {
	switch l2 := l2.(type) {
	case *KnownBitsLattice:
		return l1.width == l2.width
	default:
		return false
	}
}

func (l *KnownBitsLattice) String() string {
	return colorize.Lattice(fmt.Sprintf("KnownBits[%d]", l.width))
}

// Size is the number of members of the lattice, 3^width.
func (l *KnownBitsLattice) Size() uint64 {
	return pow3(l.width)
}

// Enumerate produces every member of the lattice exactly once.
// The enumeration order is the bijection from indices in [0, 3^width) to
// per-bit ternary digit assignments: digit i of the index in base 3
// decides the state of bit i, where 0 is known-zero, 1 is known-one and
// 2 is unknown.
func (l *KnownBitsLattice) Enumerate() []KnownBits {
	members := make([]KnownBits, 0, l.Size())
	for i := uint64(0); i < l.Size(); i++ {
		zero, one := bitvec.New(l.width), bitvec.New(l.width)
		digits := i
		for bit := 0; bit < l.width; bit++ {
			switch digits % 3 {
			case 0:
				zero = zero.SetBit(bit)
			case 1:
				one = one.SetBit(bit)
			case 2:
				// Unknown bit.
			}
			digits /= 3
		}
		members = append(members, elFact.KnownBits(l, zero, one))
	}
	return members
}

func pow3(n int) uint64 {
	res := uint64(1)
	for i := 0; i < n; i++ {
		res *= 3
	}
	return res
}

var _ Lattice = &KnownBitsLattice{}
