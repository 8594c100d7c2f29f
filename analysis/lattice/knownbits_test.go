package lattice

import (
	"testing"

	"github.com/cs-au-dk/knownbits/utils/bitvec"
	"github.com/cs-au-dk/knownbits/utils/set"
)

// parseKB builds a known-bits element from an MSB-first rendering where
// 0 and 1 are known bits and ? is an unknown bit.
func parseKB(t *testing.T, s string) KnownBits {
	t.Helper()
	width := len(s)
	zero, one := bitvec.New(width), bitvec.New(width)
	for i, c := range s {
		bit := width - 1 - i
		switch c {
		case '0':
			zero = zero.SetBit(bit)
		case '1':
			one = one.SetBit(bit)
		case '?':
		default:
			t.Fatalf("bad bit %q in %q", c, s)
		}
	}
	return elFact.KnownBits(latFact.KnownBits(width), zero, one)
}

func parseVal(t *testing.T, s string) bitvec.BitVec {
	t.Helper()
	v := bitvec.New(len(s))
	for i, c := range s {
		if c == '1' {
			v = v.SetBit(len(s) - 1 - i)
		}
	}
	return v
}

func TestEnumerate(t *testing.T) {
	for width := 1; width <= 5; width++ {
		lat := latFact.KnownBits(width)
		members := lat.Enumerate()

		if uint64(len(members)) != lat.Size() {
			t.Errorf("Enumerate() of %s yielded %d members, expected %d\n",
				lat, len(members), lat.Size())
		}

		seen := map[string]bool{}
		for index, member := range members {
			str := member.String()
			if seen[str] {
				t.Errorf("Enumerate() of %s yielded %s more than once\n", lat, member)
			}
			seen[str] = true

			// Digit i of the index in base 3 decides the state of bit i.
			digits := uint64(index)
			for bit := 0; bit < width; bit++ {
				var ok bool
				switch digits % 3 {
				case 0:
					ok = member.KnownZeroAt(bit)
				case 1:
					ok = member.KnownOneAt(bit)
				case 2:
					ok = member.UnknownAt(bit)
				}
				if !ok {
					t.Errorf("member %d of %s is %s: bit %d does not decode digit %d\n",
						index, lat, member, bit, digits%3)
				}
				digits /= 3
			}

			if !member.Zero().And(member.One()).IsZero() {
				t.Errorf("member %s of %s has overlapping masks\n", member, lat)
			}
		}
	}
}

func TestConcretize(t *testing.T) {
	tests := []struct {
		e        string
		expected []string
	}{
		{"0000", []string{"0000"}},
		{"1011", []string{"1011"}},
		{"10?1", []string{"1001", "1011"}},
		{"?0??", []string{"0000", "0001", "0010", "0011", "1000", "1001", "1010", "1011"}},
	}

	for _, test := range tests {
		e := parseKB(t, test.e)
		conc := e.Concretize()

		if conc.Size() != len(test.expected) {
			t.Errorf("|γ(%s)| = %d, expected %d\n", e, conc.Size(), len(test.expected))
		}
		for _, s := range test.expected {
			if !conc.Contains(parseVal(t, s)) {
				t.Errorf("γ(%s) is missing %s\n", e, s)
			}
		}
	}

	// Every concretization has 2^k values for k unknown bits.
	for _, e := range latFact.KnownBits(4).Enumerate() {
		if expected := 1 << e.UnknownCount(); e.Concretize().Size() != expected {
			t.Errorf("|γ(%s)| = %d, expected %d\n", e, e.Concretize().Size(), expected)
		}
	}
}

func TestAbstractExact(t *testing.T) {
	tests := []struct {
		v        string
		expected string
	}{
		{"0000", "0000"},
		{"1011", "1011"},
		{"1", "1"},
	}

	for _, test := range tests {
		e := elFact.Exact(parseVal(t, test.v))
		if expected := parseKB(t, test.expected); !e.Eq(expected) {
			t.Errorf("α({%s}) = %s, expected %s\n", test.v, e, expected)
		}
	}
}

// Abstraction after concretization recovers the element exactly: the pair
// forms a Galois insertion on the conflict-free domain.
func TestAbstractRoundTrip(t *testing.T) {
	for _, e := range latFact.KnownBits(4).Enumerate() {
		if back := elFact.Abstract(e.Concretize(), 4); !back.Eq(e) {
			t.Errorf("α(γ(%s)) = %s, expected %s\n", e, back, e)
		}
	}
}

// Every set of values is included in the concretization of its abstraction.
func TestAbstractSound(t *testing.T) {
	lat := latFact.ConcreteSet(3)

	set.SubsetsV(
		parseVal(t, "000"),
		parseVal(t, "010"),
		parseVal(t, "011"),
		parseVal(t, "101"),
	).ForEach(func(vs []bitvec.BitVec) {
		if len(vs) == 0 {
			return
		}
		cs := elFact.ConcreteSet(lat, vs...)
		ab := elFact.Abstract(cs, 3)
		if !cs.Leq(ab.Concretize()) {
			t.Errorf("%s ⊑ γ(α(%s)) should hold, but γ = %s\n", cs, cs, ab.Concretize())
		}
	})
}

// The structural known-bits order must agree with inclusion of
// concretizations on all pairs.
func TestLeqMatchesConcretization(t *testing.T) {
	members := latFact.KnownBits(3).Enumerate()
	for _, e1 := range members {
		for _, e2 := range members {
			structural := e1.Leq(e2)
			semantic := e1.Concretize().Leq(e2.Concretize())
			if structural != semantic {
				t.Errorf("%s ⊑ %s = %v, expected %v\n", e1, e2, structural, semantic)
			}
		}
	}
}

func TestLeq(t *testing.T) {
	tests := []struct {
		e1, e2   string
		expected bool
	}{
		{"1011", "1011", true},
		{"1011", "10?1", true},
		{"10?1", "1011", false},
		{"10?1", "????", true},
		{"????", "10?1", false},
		{"0??", "?0?", false},
		{"?0?", "0??", false},
	}

	for _, test := range tests {
		e1, e2 := parseKB(t, test.e1), parseKB(t, test.e2)
		if res := e1.Leq(e2); res != test.expected {
			t.Errorf("%s ⊑ %s = %v, expected %v\n", e1, e2, res, test.expected)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		e1, e2   string
		expected string
	}{
		{"1011", "1011", "1011"},
		{"1011", "1001", "10?1"},
		{"10?1", "0011", "?0?1"},
		{"????", "1011", "????"},
	}

	for _, test := range tests {
		e1, e2 := parseKB(t, test.e1), parseKB(t, test.e2)
		expected := parseKB(t, test.expected)
		if res := e1.Join(e2); !res.Eq(expected) {
			t.Errorf("%s ⊔ %s = %s, expected %s\n", e1, e2, res, expected)
		}
		if res := e2.Join(e1); !res.Eq(expected) {
			t.Errorf("%s ⊔ %s = %s, expected %s\n", e2, e1, res, expected)
		}
	}
}

func TestMeet(t *testing.T) {
	tests := []struct {
		e1, e2   string
		expected string
	}{
		{"10?1", "1??1", "1011"},
		{"????", "1011", "1011"},
		{"1?", "?0", "10"},
	}

	for _, test := range tests {
		e1, e2 := parseKB(t, test.e1), parseKB(t, test.e2)
		expected := parseKB(t, test.expected)
		if res := e1.Meet(e2); !res.Eq(expected) {
			t.Errorf("%s ⊓ %s = %s, expected %s\n", e1, e2, res, expected)
		}
	}
}

func TestMeetConflictPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("⊓ of conflicting elements should panic\n")
		}
	}()
	parseKB(t, "10?1").Meet(parseKB(t, "11?1"))
}

func TestBotPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Bot() of the known-bits lattice should panic\n")
		}
	}()
	latFact.KnownBits(4).Bot()
}

func TestConflictingMasksPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("creation with overlapping masks should panic\n")
		}
	}()
	elFact.KnownBits(latFact.KnownBits(4),
		parseVal(t, "0010"),
		parseVal(t, "0011"))
}

func TestTop(t *testing.T) {
	top := latFact.KnownBits(4).Top().KnownBits()
	if top.UnknownCount() != 4 {
		t.Errorf("⊤ = %s, expected every bit unknown\n", top)
	}
	for _, e := range latFact.KnownBits(4).Enumerate() {
		if !e.Leq(top) {
			t.Errorf("%s ⊑ %s = false, expected true\n", e, top)
		}
	}
}
