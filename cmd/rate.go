package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/renderer"
	"github.com/google/subcommands"
)

type rateCmd struct {
	exact bool
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "print the rate of a currency pair" }
func (*rateCmd) Usage() string {
	return `fxm rate [-exact] <NUM> <DEN>

  Prints the quantity of NUM worth one unit of DEN. With -checked, cross
  rates are inferred from the supplied ones.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.exact, "exact", false, "Print every digit of the rate instead of 6 significant digits.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting a numerator and a denominator currency")
		return subcommands.ExitUsageError
	}
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	num, den := fxmatrix.Currency(f.Arg(0)), fxmatrix.Currency(f.Arg(1))
	rate, err := m.FxRate(num, den)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.exact {
		fmt.Println(strconv.FormatFloat(rate, 'f', -1, 64))
	} else {
		fmt.Println(renderer.FormatRate(rate))
	}
	return subcommands.ExitSuccess
}
