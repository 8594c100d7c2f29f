package transfer

import (
	"fmt"

	"github.com/cs-au-dk/knownbits/analysis/lattice"
	"github.com/cs-au-dk/knownbits/utils/bitvec"
)

// checkSextPrecondition aborts on source widths outside (0, width].
// A violation is a caller bug, not a runtime condition, and is never
// recovered.
func checkSextPrecondition(width, srcWidth int) {
	if !(0 < srcWidth && srcWidth <= width) {
		panic(fmt.Sprintf("illegal sext-in-register: source width %d not in (0, %d]", srcWidth, width))
	}
}

// SextInRegComposite computes the effect of sign-extending the low
// srcWidth bits of a width-bit value by composing the Shl and AShr
// primitive transfer functions: the source bits are shifted up against
// the top of the register and arithmetically shifted back down.
func SextInRegComposite(v lattice.KnownBits, srcWidth int) lattice.KnownBits {
	width := v.Width()
	checkSextPrecondition(width, srcWidth)

	if srcWidth == width {
		return v
	}

	extBits := width - srcWidth
	return AShr(Shl(v, extBits), extBits)
}

// SextInRegDecomposed computes sign-extension in register directly from
// its semantic definition. The low srcWidth known bits are copied
// verbatim; the bits above them mirror what is known about the sign bit
// (bit srcWidth-1): all known-one if it is known-one, all known-zero if
// it is known-zero, and left unknown otherwise, since nothing more
// precise can be derived from an unknown sign.
func SextInRegDecomposed(v lattice.KnownBits, srcWidth int) lattice.KnownBits {
	width := v.Width()
	checkSextPrecondition(width, srcWidth)

	if srcWidth == width {
		return v
	}

	zero, one := bitvec.New(width), bitvec.New(width)
	for i := 0; i < srcWidth; i++ {
		if v.KnownZeroAt(i) {
			zero = zero.SetBit(i)
		}
		if v.KnownOneAt(i) {
			one = one.SetBit(i)
		}
	}

	signBit := srcWidth - 1
	switch {
	case v.KnownOneAt(signBit):
		for i := srcWidth; i < width; i++ {
			one = one.SetBit(i)
		}
	case v.KnownZeroAt(signBit):
		for i := srcWidth; i < width; i++ {
			zero = zero.SetBit(i)
		}
	}

	return lattice.Elements().KnownBits(v.Lattice(), zero, one)
}
