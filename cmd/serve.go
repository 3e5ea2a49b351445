package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/httpapi"
	"github.com/go-kit/log/level"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type serveCmd struct {
	addr    string
	metrics bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the rates over HTTP" }
func (*serveCmd) Usage() string {
	return `fxm serve [-addr <host:port>] [-metrics]

  Serves a read-only JSON API over the rates file:

    GET  /currencies
    GET  /rates/{numerator}/{denominator}
    GET  /matrix
    POST /convert

  With -metrics, call counts and durations are exposed at /metrics.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "Address to listen on.")
	f.BoolVar(&c.metrics, "metrics", false, "Expose prometheus metrics at /metrics.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := OpenMatrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := newLogger()

	// serve a frozen copy when every pair resolves, the loaded matrix otherwise.
	var served fxmatrix.Mutable = m
	if snap, err := fxmatrix.Freeze(m); err == nil {
		served = snap
	} else {
		level.Warn(logger).Log("msg", "serving an incomplete matrix", "err", err)
	}

	var opts []httpapi.Option
	if c.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		served = fxmatrix.NewInstrumentedMatrix(fxmatrix.NewMetrics(reg), served)
		opts = append(opts, httpapi.WithHandler("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	srv := &http.Server{
		Addr:              c.addr,
		Handler:           httpapi.NewServer(served, logger, opts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	level.Info(logger).Log("msg", "listening", "addr", c.addr, "currencies", served.NumberOfCurrencies())
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
