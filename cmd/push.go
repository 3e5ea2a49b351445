package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/persist"
	"github.com/google/subcommands"
)

var redisAddr = flag.String("redis-addr", envString(EnvRedisAddr, "localhost:6379"), "Address of the redis server used by push and pull. Defaults to $"+EnvRedisAddr+".")

const keyPrefix = "fxm:"

// openStore connects to the redis server. Tests replace it.
var openStore = func(ctx context.Context) (*persist.Store, func() error, error) {
	rdb, err := persist.Connect(ctx, *redisAddr, os.Getenv("FXM_REDIS_PASSWORD"), 0)
	if err != nil {
		return nil, nil, err
	}
	return persist.NewStore(rdb, keyPrefix), rdb.Close, nil
}

type pushCmd struct {
	name string
	ttl  time.Duration
}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "save a snapshot of the rates to redis" }
func (*pushCmd) Usage() string {
	return `fxm push [-name <name>] [-ttl <duration>]

  Freezes the rates file into a snapshot and saves it to redis. Every pair of
  currencies must have a rate, use -checked to infer the cross rates.
`
}

func (c *pushCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "latest", "Name of the snapshot.")
	f.DurationVar(&c.ttl, "ttl", 0, "Expiration of the snapshot. Zero keeps it forever.")
}

func (c *pushCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	snap, err := fxmatrix.Freeze(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot snapshot %s: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := store.Save(ctx, c.name, snap, c.ttl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Snapshot %q saved with %d currencies.\n", c.name, snap.NumberOfCurrencies())
	return subcommands.ExitSuccess
}

type pullCmd struct {
	name   string
	output string
	list   bool
}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "load a snapshot of the rates from redis" }
func (*pullCmd) Usage() string {
	return `fxm pull [-name <name>] [-o <file>] [-list]

  Loads a snapshot from redis and writes its rates as quotes, replacing the
  rates file unless -o is given. With -list, prints the saved snapshot names.
`
}

func (c *pullCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "latest", "Name of the snapshot.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the rates file.")
	f.BoolVar(&c.list, "list", false, "List the saved snapshots instead.")
}

func (c *pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if c.list {
		names, err := store.Names(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return subcommands.ExitSuccess
	}

	snap, err := store.Load(ctx, c.name)
	if errors.Is(err, persist.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no snapshot named %q\n", c.name)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	quotes := fxmatrix.Quotes(snap)
	for i := range quotes {
		quotes[i].Source = "redis:" + c.name
	}
	if err := encodeRatesFile(output, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding rates: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Snapshot %q written to '%s' (%d quotes).\n", c.name, output, len(quotes))
	return subcommands.ExitSuccess
}
