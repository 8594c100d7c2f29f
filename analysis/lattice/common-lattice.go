package lattice

import (
	"log"
)

type Lattice interface {
	Top() Element
	Bot() Element

	String() string
	Eq(Lattice) bool

	// These methods allow for quick type conversions.
	// Suitable, if you know what lattice type to expect.
	KnownBits() *KnownBitsLattice
	ConcreteSet() *ConcreteSetLattice
}

type lattice struct{}

func (*lattice) KnownBits() *KnownBitsLattice {
	panic(errUnsupportedTypeConversion)
}

func (*lattice) ConcreteSet() *ConcreteSetLattice {
	panic(errUnsupportedTypeConversion)
}

func checkLatticeMatch(l1, l2 Lattice, binop string) {
	if !l1.Eq(l2) {
		log.Fatal(
			"Lattice error - Invalid", binop,
			"\nOperand 1 ∈\n",
			l1.String(),
			"\nOperand 2 ∈\n",
			l2.String(),
		)
	}
}
