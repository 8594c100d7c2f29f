package main

import (
	"os"
	"time"

	"github.com/cs-au-dk/knownbits/analysis/precision"
	"github.com/cs-au-dk/knownbits/utils"
)

const (
	minBitWidth = 4
	maxBitWidth = 8
)

var opts = utils.Opts()

func main() {
	utils.ParseArgs()

	if opts.Verbose() {
		defer utils.TimeTrack(time.Now(), "sext-in-register precision sweep")
	}

	for width := minBitWidth; width <= maxBitWidth; width++ {
		for srcWidth := 1; srcWidth <= width; srcWidth++ {
			utils.VerbosePrint("Comparing sext-in-register transfer functions for width %d, source width %d\n",
				width, srcWidth)
			precision.WriteResult(os.Stdout, precision.RunPair(width, srcWidth))
		}
	}
}
