package lattice

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/knownbits/utils/bitvec"

	"github.com/benbjohnson/immutable"
)

// KnownBits is a member of the known-bits lattice: a per-bit three-valued
// abstraction of a set of concrete fixed-width values. The known-zero and
// known-one masks are disjoint; a bit absent from both is unknown.
// Members are immutable once produced.
type KnownBits struct {
	element
	zero bitvec.BitVec
	one  bitvec.BitVec
}

// KnownBits creates a member of the given known-bits lattice from its
// known-zero and known-one masks. It enforces the mask disjointness
// invariant: a bit may never simultaneously be known-zero and known-one.
func (elementFactory) KnownBits(lat Lattice, zero, one bitvec.BitVec) KnownBits {
	l := lat.KnownBits()
	if zero.Width() != l.width || one.Width() != l.width {
		panic(fmt.Sprintf("mask widths %d/%d do not match %s", zero.Width(), one.Width(), l))
	}
	if !zero.And(one).IsZero() {
		panic(fmt.Sprintf("conflicting known bits: masks %s and %s overlap", zero, one))
	}
	return KnownBits{element{l}, zero, one}
}

// KnownBits safely converts to a known-bits element.
func (e KnownBits) KnownBits() KnownBits {
	return e
}

// Width is the bit-width of the abstracted values.
func (e KnownBits) Width() int {
	return e.zero.Width()
}

// Zero returns the known-zero mask.
func (e KnownBits) Zero() bitvec.BitVec {
	return e.zero
}

// One returns the known-one mask.
func (e KnownBits) One() bitvec.BitVec {
	return e.one
}

// KnownZeroAt checks whether bit i is known to be 0.
func (e KnownBits) KnownZeroAt(i int) bool {
	return e.zero.Bit(i)
}

// KnownOneAt checks whether bit i is known to be 1.
func (e KnownBits) KnownOneAt(i int) bool {
	return e.one.Bit(i)
}

// UnknownAt checks whether nothing is known about bit i.
func (e KnownBits) UnknownAt(i int) bool {
	return !e.zero.Bit(i) && !e.one.Bit(i)
}

// UnknownCount is the number of unknown bits.
func (e KnownBits) UnknownCount() int {
	return e.Width() - e.zero.OnesCount() - e.one.OnesCount()
}

// String renders the per-bit states with the most significant bit first:
// 0 and 1 for known bits, ? for unknown bits.
func (e KnownBits) String() string {
	var sb strings.Builder
	sb.Grow(e.Width())
	for i := e.Width() - 1; i >= 0; i-- {
		switch {
		case e.zero.Bit(i):
			sb.WriteByte('0')
		case e.one.Bit(i):
			sb.WriteByte('1')
		default:
			sb.WriteByte('?')
		}
	}
	return colorize.Element(sb.String())
}

// Height is the number of unknown bits: the number of joins with exact
// elements separating the element from the minimal members of the lattice.
func (e KnownBits) Height() int {
	return e.UnknownCount()
}

// Leq computes m ⊑ o. Performs lattice dynamic type checking.
func (e1 KnownBits) Leq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊑")
	return e1.leq(e2)
}

// leq computes m ⊑ o: inclusion of concretizations, which holds exactly
// when every bit known in o is known with the same value in m.
func (e1 KnownBits) leq(e2 Element) bool {
	switch e2 := e2.(type) {
	case KnownBits:
		return e2.zero.And(e1.zero.Not()).IsZero() &&
			e2.one.And(e1.one.Not()).IsZero()
	}
	panic(errInternal)
}

// Geq computes m ⊒ o. Performs lattice dynamic type checking.
func (e1 KnownBits) Geq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊒")
	return e1.geq(e2)
}

// geq computes m ⊒ o.
func (e1 KnownBits) geq(e2 Element) bool {
	switch e2 := e2.(type) {
	case KnownBits:
		return e2.leq(e1)
	}
	panic(errInternal)
}

// Eq computes m = o. Performs lattice dynamic type checking.
func (e1 KnownBits) Eq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "=")
	return e1.eq(e2)
}

// eq computes m = o.
func (e1 KnownBits) eq(e2 Element) bool {
	return e1.leq(e2) && e1.geq(e2)
}

// Join computes m ⊔ o. Performs lattice dynamic type checking.
func (e1 KnownBits) Join(e2 Element) Element {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊔")
	return e1.join(e2)
}

// join computes m ⊔ o: only bits known with the same value on both sides
// stay known.
func (e1 KnownBits) join(e2 Element) Element {
	switch e2 := e2.(type) {
	case KnownBits:
		return KnownBits{e1.element, e1.zero.And(e2.zero), e1.one.And(e2.one)}
	}
	panic(errInternal)
}

// Meet computes m ⊓ o. Performs lattice dynamic type checking.
func (e1 KnownBits) Meet(e2 Element) Element {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊓")
	return e1.meet(e2)
}

// meet computes m ⊓ o by combining the knowledge of both sides. The
// known-bits domain has no ⊥, so the meet of elements with contradictory
// knowledge about some bit is undefined.
func (e1 KnownBits) meet(e2 Element) Element {
	switch e2 := e2.(type) {
	case KnownBits:
		zero, one := e1.zero.Or(e2.zero), e1.one.Or(e2.one)
		if !zero.And(one).IsZero() {
			panic(errUnsupportedOperation)
		}
		return KnownBits{e1.element, zero, one}
	}
	panic(errInternal)
}

// Concretize returns the exact set of concrete values consistent with the
// element: every known bit is fixed to its known value and every unknown
// bit ranges freely over {0, 1}. The result contains 2^k values for k
// unknown bits, one per combination index, with free bit j of the index
// assigned to the j-th unknown bit position.
func (e KnownBits) Concretize() ConcreteSet {
	width := e.Width()
	unknown := make([]int, 0, width)
	for i := 0; i < width; i++ {
		if e.UnknownAt(i) {
			unknown = append(unknown, i)
		}
	}

	b := immutable.NewSortedMapBuilder[bitvec.BitVec, struct{}](bitvecComparer{})
	for i := uint64(0); i < uint64(1)<<len(unknown); i++ {
		v := e.one
		for j, bit := range unknown {
			if i&(uint64(1)<<j) != 0 {
				v = v.SetBit(bit)
			}
		}
		b.Set(v, struct{}{})
	}
	return ConcreteSet{element{latFact.ConcreteSet(width)}, b.Map()}
}

var _ Element = KnownBits{}
