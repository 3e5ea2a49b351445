package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type convertCmd struct {
	to    string
	short bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert amounts in several currencies into one" }
func (*convertCmd) Usage() string {
	return `fxm convert -to <CUR> [-short] <amount> <CUR> [<amount> <CUR>...]

  Sums the amounts converted into the target currency and prints the
  breakdown, or only the total with -short.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Target currency (required).")
	f.BoolVar(&c.short, "short", false, "Print only the total.")
}

// parseAmounts reads a list of <amount> <CUR> pairs.
func parseAmounts(args []string) (fxmatrix.Amounts, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return fxmatrix.Amounts{}, fmt.Errorf("expecting pairs of <amount> <CUR>, got %q", args)
	}
	var amounts []fxmatrix.Amount
	for i := 0; i < len(args); i += 2 {
		v, err := decimal.NewFromString(args[i])
		if err != nil {
			return fxmatrix.Amounts{}, fmt.Errorf("invalid amount %q: %w", args[i], err)
		}
		amounts = append(amounts, fxmatrix.A(v, fxmatrix.Currency(args[i+1])))
	}
	return fxmatrix.NewAmounts(amounts...), nil
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -to is required")
		return subcommands.ExitUsageError
	}
	amounts, err := parseAmounts(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	target := fxmatrix.Currency(c.to)

	if c.short {
		total, err := m.Convert(amounts, target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(total.Value().StringFixed(int32(target.Fraction())), target)
		return subcommands.ExitSuccess
	}

	md, err := renderer.ConversionMarkdown(m, amounts, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
