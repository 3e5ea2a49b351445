package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/fxmatrix"
	"github.com/google/subcommands"
)

type addCmd struct {
	source string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a rate to the rates file" }
func (*addCmd) Usage() string {
	return `fxm add [-source <text>] <NUM> <DEN> <rate>

  Appends the quote "one DEN is worth <rate> NUM" to the rates file. The quote
  is first applied to the matrix loaded from the file, so with -checked a rate
  inconsistent with the existing ones is rejected. A quote for a pair already
  in the file replaces the older one.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Where the rate comes from.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expecting <NUM> <DEN> <rate>")
		return subcommands.ExitUsageError
	}
	num, err := fxmatrix.ParseCurrency(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	den, err := fxmatrix.ParseCurrency(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := strconv.ParseFloat(f.Arg(2), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid rate %q: %v\n", f.Arg(2), err)
		return subcommands.ExitUsageError
	}

	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	q := fxmatrix.Quote{Numerator: num, Denominator: den, Rate: rate, Source: c.source}
	if err := fxmatrix.Apply(m, []fxmatrix.Quote{q}); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding %s: %v\n", q, err)
		return subcommands.ExitFailure
	}
	if err := AppendQuotes(q); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully added %s\n", q)
	return subcommands.ExitSuccess
}
