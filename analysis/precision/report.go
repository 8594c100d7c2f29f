package precision

import (
	"fmt"
	"io"
	"strings"
)

// WriteResult renders one result block followed by a blank separator line.
func WriteResult(w io.Writer, res Result) error {
	_, err := fmt.Fprintf(w,
		"BitWidth: %d, SrcBitWidth: %d\n"+
			"Total Values: %d\n"+
			"Equal Precision: %d\n"+
			"Composite More Precise: %d\n"+
			"Decomposed More Precise: %d\n"+
			"Incomparable Results: %d\n\n",
		res.BitWidth, res.SrcBitWidth,
		res.Total,
		res.EquallyPrecise,
		res.CompositeMorePrecise,
		res.DecomposedMorePrecise,
		res.Incomparable)
	return err
}

// WriteReport renders all result blocks in order.
func WriteReport(w io.Writer, results []Result) error {
	for _, res := range results {
		if err := WriteResult(w, res); err != nil {
			return err
		}
	}
	return nil
}

func (res Result) String() string {
	var sb strings.Builder
	WriteResult(&sb, res)
	return sb.String()
}
