package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/api/bannerv1"
	"github.com/Leopold1975/current_banner/internal/pkg/bench"
	"github.com/Leopold1975/current_banner/internal/pkg/config"
	"github.com/Leopold1975/current_banner/internal/pkg/grpctools"
	"github.com/Leopold1975/current_banner/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type locationsFlag []string

func (l *locationsFlag) String() string { return strings.Join(*l, ",") }

func (l *locationsFlag) Set(v string) error {
	*l = append(*l, v)

	return nil
}

func main() {
	var (
		addr      string
		out       string
		validate  bool
		locations locationsFlag
		opts      bench.Options
	)

	flag.StringVar(&addr, "addr", "localhost:51234", "banner service address")
	flag.StringVar(&out, "out", "banners_stats.csv", "summary CSV path")
	flag.BoolVar(&validate, "validate", false, "check the summary against the default thresholds")
	flag.IntVar(&opts.Workers, "workers", 10, "concurrent callers")
	flag.DurationVar(&opts.Duration, "duration", 30*time.Second, "test duration")
	flag.DurationVar(&opts.Wait, "wait", 0, "pause between calls of a single caller")
	flag.Var(&locations, "location", "location to query (repeatable)")
	flag.Parse()

	opts.Locations = locations

	lg, err := logger.New(config.Logger{Level: "info"})
	if err != nil {
		panic(err)
	}
	defer lg.Sync() //nolint:errcheck

	if err := run(addr, out, validate, opts, lg); err != nil {
		lg.Errorf("bench error: %s", err.Error())
		lg.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(addr, out string, validate bool, opts bench.Options, lg logger.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer conn.Close()

	if err := grpctools.WaitServing(ctx, conn, bannerv1.ServiceName, 10*time.Second); err != nil { //nolint:gomnd
		return err //nolint:wrapcheck
	}

	lg.Infow("load test started", "addr", addr, "workers", opts.Workers, "duration", opts.Duration.String())

	s := bench.Run(ctx, bannerv1.NewBannerServiceClient(conn), opts, func(err error) {
		lg.Warnw("call failed", "error", err)
	})

	lg.Infow("load test finished",
		bench.MetricRequestCount, s.Requests,
		bench.MetricFailureRate, s.FailureRate(),
		bench.MetricAvgResponse, s.AvgResponse(),
		bench.MetricRPS, s.RPS(),
	)

	f, err := os.Create(out)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := s.WriteCSV(f); err != nil {
		f.Close()

		return err //nolint:wrapcheck
	}

	if err := f.Close(); err != nil {
		return err //nolint:wrapcheck
	}

	if !validate {
		return nil
	}

	if err := bench.Validate(out, bench.DefaultThresholds); err != nil {
		return err //nolint:wrapcheck
	}

	lg.Info("All metrics passed threshold checks!")

	return nil
}
