package lattice

import (
	"github.com/cs-au-dk/knownbits/utils/bitvec"
)

// Exact abstracts a single concrete value into the known-bits element
// that represents it and nothing else: every bit is known.
func (elementFactory) Exact(v bitvec.BitVec) KnownBits {
	return KnownBits{element{latFact.KnownBits(v.Width())}, v.Not(), v}
}

// Abstract computes the most precise known-bits element that soundly
// covers the given set of concrete values: the join of the exact
// abstractions of its members. A bit is known-zero (known-one) in the
// result iff it is 0 (1) in every member.
//
// The empty set is a degenerate input: no meaningful abstraction of "no
// values" exists in the ⊥-free known-bits domain, so it falls back to
// the fully unknown ⊤ rather than failing.
func (elementFactory) Abstract(s ConcreteSet, width int) KnownBits {
	lat := latFact.KnownBits(width)
	checkLatticeMatch(latFact.ConcreteSet(width), s.Lattice(), "α")

	if s.Size() == 0 {
		return lat.Top().KnownBits()
	}

	var res Element
	s.ForEach(func(v bitvec.BitVec) {
		if res == nil {
			res = elFact.Exact(v)
		} else {
			res = res.join(elFact.Exact(v))
		}
	})
	return res.KnownBits()
}
