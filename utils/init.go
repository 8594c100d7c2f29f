package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

type options struct {
	noColorize bool
	verbose    bool
}

var opts = &options{}

type optInterface struct{}

// Opts exposes the ambient command line options behind an accessor interface.
func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}

// CanColorize guards a colorizing sprint function behind the -no-colorize flag.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

func init() {
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()
}
