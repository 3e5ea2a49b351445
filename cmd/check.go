package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fxmatrix"
	"github.com/google/subcommands"
)

type checkCmd struct {
	complete bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify that the rates file is consistent" }
func (*checkCmd) Usage() string {
	return `fxm check [-complete]

  Loads the rates file into a checked matrix, whatever -checked says, and
  reports the first quote that disagrees with the rates before it. With
  -complete, also reports the pairs whose rate cannot be inferred.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.complete, "complete", false, "Require every pair of currencies to have a rate.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quotes, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	m := fxmatrix.NewChecked()
	if err := fxmatrix.Apply(m, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}

	if c.complete {
		missing := missingPairs(m)
		for _, p := range missing {
			fmt.Fprintf(os.Stderr, "Error: no rate for %s/%s\n", p[0], p[1])
		}
		if len(missing) > 0 {
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("%s: %d quotes, %d currencies, consistent\n", *ratesFile, len(quotes), m.NumberOfCurrencies())
	return subcommands.ExitSuccess
}

// missingPairs lists the pairs of m with no resolvable rate.
func missingPairs(m fxmatrix.Matrix) [][2]fxmatrix.Currency {
	var missing [][2]fxmatrix.Currency
	currencies := m.Currencies()
	for i, a := range currencies {
		for _, b := range currencies[i+1:] {
			if _, err := m.FxRate(b, a); err != nil {
				missing = append(missing, [2]fxmatrix.Currency{b, a})
			}
		}
	}
	return missing
}
