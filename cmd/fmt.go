package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fxmatrix"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	output string
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "formats the rates file into a canonical form" }
func (*fmtCmd) Usage() string {
	return `fxm fmt [-o <file>]

  Rewrites the rates file with one quote per pair, in table order. Later
  quotes of a pair win over earlier ones. Use -o to write elsewhere, for
  instance to convert a YAML rates file into JSONL.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the rates file itself.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quotes, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding rates: %v\n", err)
		return subcommands.ExitFailure
	}
	// formatting never rejects rates, whatever -checked says
	m := fxmatrix.NewUnchecked()
	if err := fxmatrix.Apply(m, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = *ratesFile
	}
	if isYAML(output) {
		fmt.Fprintf(os.Stderr, "Error: cannot write YAML rates file %q\n", output)
		return subcommands.ExitUsageError
	}
	if err := encodeRatesFile(output, keepSources(fxmatrix.Quotes(m), quotes)); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding rates: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Rates file '%s' has been formatted.\n", output)
	return subcommands.ExitSuccess
}

// keepSources copies onto formatted the source of the last quote of the same
// pair in original, whatever its orientation.
func keepSources(formatted, original []fxmatrix.Quote) []fxmatrix.Quote {
	type pair struct{ a, b fxmatrix.Currency }
	sources := make(map[pair]string)
	for _, q := range original {
		sources[pair{q.Numerator, q.Denominator}] = q.Source
		sources[pair{q.Denominator, q.Numerator}] = q.Source
	}
	for i, q := range formatted {
		formatted[i].Source = sources[pair{q.Numerator, q.Denominator}]
	}
	return formatted
}

func encodeRatesFile(filename string, quotes []fxmatrix.Quote) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening rates file %q for writing: %w", filename, err)
	}
	defer f.Close()
	return fxmatrix.EncodeQuotes(f, quotes)
}
