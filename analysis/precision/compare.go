// Package precision compares abstract transfer functions by the sets of
// concrete values their results admit, and runs exhaustive precision
// experiments over whole known-bits lattices.
package precision

import (
	"github.com/cs-au-dk/knownbits/analysis/lattice"
)

// Order is the outcome of comparing two known-bits elements in the
// precision partial order.
type Order int

const (
	// Equal holds when both elements admit exactly the same concrete values.
	Equal Order = iota
	// LeftMorePrecise holds when the left concretization is a strict
	// subset of the right one.
	LeftMorePrecise
	// RightMorePrecise holds when the right concretization is a strict
	// subset of the left one.
	RightMorePrecise
	// Incomparable holds when neither concretization includes the other.
	Incomparable
)

func (o Order) String() string {
	switch o {
	case Equal:
		return "equal"
	case LeftMorePrecise:
		return "left more precise"
	case RightMorePrecise:
		return "right more precise"
	case Incomparable:
		return "incomparable"
	}
	panic("unreachable")
}

// Swap mirrors the outcome under exchange of the compared elements.
func (o Order) Swap() Order {
	switch o {
	case LeftMorePrecise:
		return RightMorePrecise
	case RightMorePrecise:
		return LeftMorePrecise
	}
	return o
}

// Compare determines the precision relation between two known-bits
// elements of the same lattice via subset inclusion of their
// concretizations. The concrete route is deliberate: it is the defining
// semantics of the precision order, independent of the structural
// shortcut the known-bits Leq takes.
func Compare(a, b lattice.KnownBits) Order {
	ca, cb := a.Concretize(), b.Concretize()
	leq, geq := ca.Leq(cb), ca.Geq(cb)
	switch {
	case leq && geq:
		return Equal
	case leq:
		return LeftMorePrecise
	case geq:
		return RightMorePrecise
	}
	return Incomparable
}
