package lattice

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/knownbits/utils/bitvec"

	"github.com/benbjohnson/immutable"
)

// ConcreteSet is a member of the concrete powerset lattice: a duplicate-free
// set of concrete fixed-width values held in unsigned numeric order.
type ConcreteSet struct {
	element
	values *immutable.SortedMap[bitvec.BitVec, struct{}]
}

// bitvecComparer totally orders concrete values by unsigned comparison.
type bitvecComparer struct{}

func (bitvecComparer) Compare(a, b bitvec.BitVec) int {
	switch {
	case a.Ult(b):
		return -1
	case b.Ult(a):
		return 1
	default:
		return 0
	}
}

// ConcreteSet creates a member of the given concrete powerset lattice
// containing the given values.
func (elementFactory) ConcreteSet(lat Lattice, vs ...bitvec.BitVec) ConcreteSet {
	l := lat.ConcreteSet()
	b := immutable.NewSortedMapBuilder[bitvec.BitVec, struct{}](bitvecComparer{})
	for _, v := range vs {
		if v.Width() != l.width {
			panic(fmt.Sprintf("value %s does not belong in sets of %s", v, l))
		}
		b.Set(v, struct{}{})
	}
	return ConcreteSet{element{l}, b.Map()}
}

// ConcreteSet safely converts to a concrete set element.
func (e ConcreteSet) ConcreteSet() ConcreteSet {
	return e
}

// Size is the cardinality of the set.
func (e ConcreteSet) Size() int {
	return e.values.Len()
}

// Contains checks whether the set holds the given value.
func (e ConcreteSet) Contains(v bitvec.BitVec) bool {
	_, found := e.values.Get(v)
	return found
}

// Add yields the set extended with the given value.
func (e ConcreteSet) Add(v bitvec.BitVec) ConcreteSet {
	if v.Width() != e.Lattice().ConcreteSet().width {
		panic(fmt.Sprintf("value %s does not belong in sets of %s", v, e.Lattice()))
	}
	return ConcreteSet{e.element, e.values.Set(v, struct{}{})}
}

// ForEach visits every value in the set in ascending unsigned order.
func (e ConcreteSet) ForEach(do func(bitvec.BitVec)) {
	for iter := e.values.Iterator(); !iter.Done(); {
		v, _, _ := iter.Next()
		do(v)
	}
}

// Values aggregates the members of the set into a slice in ascending
// unsigned order.
func (e ConcreteSet) Values() (vs []bitvec.BitVec) {
	e.ForEach(func(v bitvec.BitVec) {
		vs = append(vs, v)
	})
	return
}

func (e ConcreteSet) String() string {
	if e.Size() == 0 {
		return colorize.Element("∅")
	}
	strs := make([]string, 0, e.Size())
	e.ForEach(func(v bitvec.BitVec) {
		strs = append(strs, colorize.Element(v.String()))
	})
	return "{ " + strings.Join(strs, ", ") + " }"
}

// Height is the cardinality of the set: its distance from ⊥ = ∅.
func (e ConcreteSet) Height() int {
	return e.Size()
}

// Leq computes m ⊑ o. Performs lattice dynamic type checking.
func (e1 ConcreteSet) Leq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊑")
	return e1.leq(e2)
}

// leq computes m ⊑ o as subset inclusion.
func (e1 ConcreteSet) leq(e2 Element) bool {
	switch e2 := e2.(type) {
	case ConcreteSet:
		if e1.Size() > e2.Size() {
			return false
		}
		result := true
		e1.ForEach(func(v bitvec.BitVec) {
			result = result && e2.Contains(v)
		})
		return result
	}
	panic(errInternal)
}

// Geq computes m ⊒ o. Performs lattice dynamic type checking.
func (e1 ConcreteSet) Geq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊒")
	return e1.geq(e2)
}

// geq computes m ⊒ o.
func (e1 ConcreteSet) geq(e2 Element) bool {
	switch e2 := e2.(type) {
	case ConcreteSet:
		return e2.leq(e1)
	}
	panic(errInternal)
}

// Eq computes m = o. Performs lattice dynamic type checking.
func (e1 ConcreteSet) Eq(e2 Element) bool {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "=")
	return e1.eq(e2)
}

// eq computes m = o.
func (e1 ConcreteSet) eq(e2 Element) bool {
	return e1.leq(e2) && e1.geq(e2)
}

// Join computes m ⊔ o. Performs lattice dynamic type checking.
func (e1 ConcreteSet) Join(e2 Element) Element {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊔")
	return e1.join(e2)
}

// join computes m ⊔ o as set union.
func (e1 ConcreteSet) join(e2 Element) Element {
	switch e2 := e2.(type) {
	case ConcreteSet:
		res := e1.values
		e2.ForEach(func(v bitvec.BitVec) {
			res = res.Set(v, struct{}{})
		})
		return ConcreteSet{e1.element, res}
	}
	panic(errInternal)
}

// Meet computes m ⊓ o. Performs lattice dynamic type checking.
func (e1 ConcreteSet) Meet(e2 Element) Element {
	checkLatticeMatch(e1.lattice, e2.Lattice(), "⊓")
	return e1.meet(e2)
}

// meet computes m ⊓ o as set intersection.
func (e1 ConcreteSet) meet(e2 Element) Element {
	switch e2 := e2.(type) {
	case ConcreteSet:
		b := immutable.NewSortedMapBuilder[bitvec.BitVec, struct{}](bitvecComparer{})
		e1.ForEach(func(v bitvec.BitVec) {
			if e2.Contains(v) {
				b.Set(v, struct{}{})
			}
		})
		return ConcreteSet{e1.element, b.Map()}
	}
	panic(errInternal)
}

var _ Element = ConcreteSet{}
