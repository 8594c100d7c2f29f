package precision

import (
	"github.com/cs-au-dk/knownbits/analysis/lattice"
	"github.com/cs-au-dk/knownbits/analysis/transfer"
)

// Result tallies the precision comparison outcomes of an exhaustive
// sweep of one (bit-width, source bit-width) configuration.
type Result struct {
	BitWidth    int
	SrcBitWidth int

	Total                 uint64
	EquallyPrecise        uint64
	CompositeMorePrecise  uint64
	DecomposedMorePrecise uint64
	Incomparable          uint64
}

// RunPair compares the composite and decomposed sign-extension transfer
// functions on every member of the known-bits lattice of the given
// bit-width, extending from the given source width. Each of the 3^width
// members contributes exactly one outcome to the tally.
func RunPair(width, srcWidth int) Result {
	res := Result{BitWidth: width, SrcBitWidth: srcWidth}
	for _, v := range lattice.Create().Lattice().KnownBits(width).Enumerate() {
		composite := transfer.SextInRegComposite(v, srcWidth)
		decomposed := transfer.SextInRegDecomposed(v, srcWidth)

		res.Total++
		switch Compare(composite, decomposed) {
		case Equal:
			res.EquallyPrecise++
		case LeftMorePrecise:
			res.CompositeMorePrecise++
		case RightMorePrecise:
			res.DecomposedMorePrecise++
		case Incomparable:
			res.Incomparable++
		}
	}
	return res
}

// Sweep runs every configuration with bit-width in [minWidth, maxWidth]
// and source width in [1, bit-width], in ascending order.
func Sweep(minWidth, maxWidth int) (results []Result) {
	for width := minWidth; width <= maxWidth; width++ {
		for srcWidth := 1; srcWidth <= width; srcWidth++ {
			results = append(results, RunPair(width, srcWidth))
		}
	}
	return
}
