// Package cmd implements the CLI application to query and maintain an FX
// rates file.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/etnz/fxmatrix"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&rateCmd{}, "rates")
	c.Register(&convertCmd{}, "rates")
	c.Register(&tableCmd{}, "rates")

	c.Register(&addCmd{}, "rates file")
	c.Register(&checkCmd{}, "rates file")
	c.Register(&fetchCmd{}, "rates file")
	c.Register(&fmtCmd{}, "rates file")

	c.Register(&serveCmd{}, "sharing")
	c.Register(&pushCmd{}, "sharing")
	c.Register(&pullCmd{}, "sharing")

	c.Register(&topicCmd{}, "help")
}

const (
	EnvRatesFile = "FXM_RATES_FILE"
	EnvChecked   = "FXM_CHECKED"
	EnvVerbose   = "FXM_VERBOSE"
	EnvRedisAddr = "FXM_REDIS_ADDR"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ratesFile = flag.String("rates-file", envString(EnvRatesFile, "rates.jsonl"), "Path to the rates file (JSONL, or YAML for .yaml/.yml files). Defaults to $"+EnvRatesFile+".")
var checked = flag.Bool("checked", envBool(EnvChecked), "Build a checked matrix: infer cross rates and reject inconsistent ones. Defaults to $"+EnvChecked+".")
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Log every matrix call to stderr. Defaults to $"+EnvVerbose+".")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// newLogger returns the structured logger writing to stderr.
func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if *Verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// DecodeQuotes reads the quotes of the app rates file. A missing file holds
// no quote.
func DecodeQuotes() ([]fxmatrix.Quote, error) {
	f, err := os.Open(*ratesFile)
	if errors.Is(err, fs.ErrNotExist) {
		stdlog.Printf("warning, rates file %q does not exist, starting from an empty matrix", *ratesFile)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if isYAML(*ratesFile) {
		return fxmatrix.DecodeQuotesYAML(f)
	}
	return fxmatrix.DecodeQuotes(f)
}

// newMatrix returns an empty matrix of the flavor selected by the -checked
// flag, logging its calls in verbose mode.
func newMatrix() fxmatrix.Mutable {
	var m fxmatrix.Mutable = fxmatrix.NewUnchecked()
	if *checked {
		m = fxmatrix.NewChecked()
	}
	if *Verbose {
		m = fxmatrix.NewLoggingMatrix(newLogger(), m)
	}
	return m
}

// OpenMatrix loads the app rates file into a new matrix. Later quotes of a
// pair replace earlier ones.
func OpenMatrix() (fxmatrix.Mutable, error) {
	quotes, err := DecodeQuotes()
	if err != nil {
		return nil, err
	}
	m := newMatrix()
	if err := fxmatrix.Apply(m, quotes); err != nil {
		return nil, fmt.Errorf("%s: %w", *ratesFile, err)
	}
	return m, nil
}

// AppendQuotes appends quotes to the app rates file.
func AppendQuotes(quotes ...fxmatrix.Quote) error {
	filename := *ratesFile
	if isYAML(filename) {
		return fmt.Errorf("cannot append to YAML rates file %q: convert it with 'fxm fmt -o file.jsonl'", filename)
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening rates file %q: %w", filename, err)
	}
	defer f.Close()
	if err := fxmatrix.EncodeQuotes(f, quotes); err != nil {
		return fmt.Errorf("error writing to rates file %q: %w", filename, err)
	}
	return nil
}
