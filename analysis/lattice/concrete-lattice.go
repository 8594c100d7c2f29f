package lattice

import (
	"fmt"

	"github.com/cs-au-dk/knownbits/utils/bitvec"

	"github.com/benbjohnson/immutable"
)

// ConcreteSetLattice is the powerset lattice of concrete fixed-width
// values, ordered by set inclusion. It is the concrete side of the
// known-bits abstraction: concretization maps into it.
type ConcreteSetLattice struct {
	lattice
	width int
	bot   *ConcreteSet
	top   *ConcreteSet
}

var concreteSetLattices = map[int]*ConcreteSetLattice{}

// ConcreteSet yields the powerset lattice of concrete values of the given
// bit-width.
func (latticeFactory) ConcreteSet(width int) *ConcreteSetLattice {
	checkWidth(width)
	if lat, found := concreteSetLattices[width]; found {
		return lat
	}
	lat := &ConcreteSetLattice{width: width}
	concreteSetLattices[width] = lat
	return lat
}

func (l *ConcreteSetLattice) ConcreteSet() *ConcreteSetLattice {
	return l
}

// Width is the bit-width shared by all values in members of the lattice.
func (l *ConcreteSetLattice) Width() int {
	return l.width
}

// Bot returns the ⊥ element, the empty set.
func (l *ConcreteSetLattice) Bot() Element {
	if l.bot == nil {
		l.bot = &ConcreteSet{
			element{l},
			immutable.NewSortedMap[bitvec.BitVec, struct{}](bitvecComparer{}),
		}
	}
	return *l.bot
}

// Top returns the ⊤ element, containing all 2^width concrete values.
func (l *ConcreteSetLattice) Top() Element {
	if l.top == nil {
		b := immutable.NewSortedMapBuilder[bitvec.BitVec, struct{}](bitvecComparer{})
		for v := uint64(0); v < uint64(1)<<l.width; v++ {
			b.Set(bitvec.FromUint64(l.width, v), struct{}{})
		}
		l.top = &ConcreteSet{element{l}, b.Map()}
	}
	return *l.top
}

// Eq checks whether another lattice is the concrete powerset lattice of
// the same width.
func (l1 *ConcreteSetLattice) Eq(l2 Lattice) bool {
	switch l2 := l2.(type) {
	case *ConcreteSetLattice:
		return l1.width == l2.width
	default:
		return false
	}
}

func (l *ConcreteSetLattice) String() string {
	return colorize.Lattice("℘") + "(" +
		colorize.Lattice(fmt.Sprintf("bitvec[%d]", l.width)) + ")"
}

var _ Lattice = &ConcreteSetLattice{}
