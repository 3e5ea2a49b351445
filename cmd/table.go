package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fxmatrix/renderer"
	"github.com/google/subcommands"
)

type tableCmd struct{}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "display the full cross-rate table" }
func (*tableCmd) Usage() string {
	return `fxm table

  Displays the rate of every pair of currencies of the rates file. Rows are
  numerators, columns denominators. With -checked, supplied rates are shown
  in bold and cross rates are inferred.
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {}

func (c *tableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: no arguments expected")
		return subcommands.ExitUsageError
	}
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.MatrixMarkdown(m))
	return subcommands.ExitSuccess
}
