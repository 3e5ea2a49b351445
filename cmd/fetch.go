package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/feed"
	"github.com/google/subcommands"
)

// sourcesFlag collects repeated -path flags.
type sourcesFlag []feed.Source

func (s *sourcesFlag) String() string {
	parts := make([]string, len(*s))
	for i, src := range *s {
		parts[i] = src.String()
	}
	return strings.Join(parts, ",")
}

func (s *sourcesFlag) Set(v string) error {
	src, err := feed.ParseSource(v)
	if err != nil {
		return err
	}
	*s = append(*s, src)
	return nil
}

type fetchCmd struct {
	url     string
	sources sourcesFlag
	cache   string
	dryRun  bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch rates from a JSON feed and append them" }
func (*fetchCmd) Usage() string {
	return `fxm fetch -url <url> -path <NUM/DEN=jsonpath> [-path ...] [-cache <dir>] [-dry-run]

  Gets the JSON document at url, reads one rate per -path and appends them to
  the rates file.

  Example:
    fxm fetch -url https://example.org/latest?base=USD -path 'EUR/USD=$.rates.EUR'
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "URL of the JSON feed (required).")
	f.Var(&c.sources, "path", "Rate to extract, as NUM/DEN=jsonpath. Can be repeated.")
	f.StringVar(&c.cache, "cache", "", "Directory caching the feed responses for the day.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the quotes instead of appending them.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.url == "" || len(c.sources) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -url and at least one -path are required")
		return subcommands.ExitUsageError
	}
	client := http.DefaultClient
	if c.cache != "" {
		client = feed.Daily(c.cache)
	}
	quotes, err := feed.Fetch(ctx, client, c.url, c.sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", c.url, err)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		if err := fxmatrix.EncodeQuotes(os.Stdout, quotes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	// validate against the current file before writing anything
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := fxmatrix.Apply(m, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: fetched rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := AppendQuotes(quotes...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully added %d quotes from %s\n", len(quotes), c.url)
	return subcommands.ExitSuccess
}
