// Package transfer implements abstract transfer functions over the
// known-bits lattice: per-bit sound over-approximations of concrete
// bit-level operations.
package transfer

import (
	"github.com/cs-au-dk/knownbits/analysis/lattice"
)

// Shl is the transfer function for a logical shift left by a constant
// amount. Both known masks are shifted as-is, so the vacated low bits
// come out unknown even though every concrete result has 0 there.
func Shl(v lattice.KnownBits, amount int) lattice.KnownBits {
	return lattice.Elements().KnownBits(v.Lattice(),
		v.Zero().Shl(amount),
		v.One().Shl(amount))
}

// AShr is the transfer function for an arithmetic shift right by a
// constant amount. Arithmetically shifting each mask replicates its own
// top bit, which propagates exactly the knowledge held about the
// operand's sign bit into the vacated high positions.
func AShr(v lattice.KnownBits, amount int) lattice.KnownBits {
	return lattice.Elements().KnownBits(v.Lattice(),
		v.Zero().Ashr(amount),
		v.One().Ashr(amount))
}
