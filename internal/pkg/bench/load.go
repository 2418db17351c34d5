package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/api/bannerv1"
	"google.golang.org/grpc"
)

var ErrEmptyTitle = errors.New("title is empty")

type Options struct {
	Locations []string
	Workers   int
	Duration  time.Duration
	// Pause between calls of a single worker.
	Wait time.Duration
}

type Summary struct {
	Requests int
	Failures int
	Total    time.Duration
	Elapsed  time.Duration
}

func (s Summary) FailureRate() float64 {
	if s.Requests == 0 {
		return 0
	}

	return float64(s.Failures) * 100 / float64(s.Requests) //nolint:gomnd
}

// AvgResponse is in milliseconds.
func (s Summary) AvgResponse() float64 {
	if s.Requests == 0 {
		return 0
	}

	return float64(s.Total.Microseconds()) / 1000 / float64(s.Requests) //nolint:gomnd
}

func (s Summary) RPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}

	return float64(s.Requests) / s.Elapsed.Seconds()
}

// WriteCSV writes the header and one summary row.
func (s Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{MetricRequestCount, MetricFailureCount, MetricFailureRate, MetricAvgResponse, MetricRPS},
		{
			strconv.Itoa(s.Requests),
			strconv.Itoa(s.Failures),
			strconv.FormatFloat(s.FailureRate(), 'f', 2, 64),
			strconv.FormatFloat(s.AvgResponse(), 'f', 2, 64),
			strconv.FormatFloat(s.RPS(), 'f', 2, 64),
		},
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv error: %w", err)
	}

	return nil
}

type collector struct {
	mu sync.Mutex
	s  Summary
}

func (c *collector) add(latency time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.s.Requests++
	c.s.Total += latency

	if failed {
		c.s.Failures++
	}
}

// Run calls GetCurrentBanner from opts.Workers goroutines until opts.Duration
// passes or ctx ends. A call fails on an RPC error or an empty title.
// onFailure may be called concurrently.
func Run(ctx context.Context, client bannerv1.BannerServiceClient, opts Options,
	onFailure func(error),
) Summary {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	if len(opts.Locations) == 0 {
		opts.Locations = []string{"US"}
	}

	var c collector

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	var wg sync.WaitGroup

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := w; ctx.Err() == nil; i++ {
				req := &bannerv1.GetCurrentBannerRequest{Location: opts.Locations[i%len(opts.Locations)]}

				callStart := time.Now()
				resp, err := client.GetCurrentBanner(ctx, req, grpc.WaitForReady(true))

				if ctx.Err() != nil {
					return
				}

				if err == nil && resp.Title == "" {
					err = ErrEmptyTitle
				}

				c.add(time.Since(callStart), err != nil)

				if err != nil && onFailure != nil {
					onFailure(err)
				}

				if opts.Wait > 0 {
					select {
					case <-ctx.Done():
					case <-time.After(opts.Wait):
					}
				}
			}
		}()
	}

	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.s.Elapsed = time.Since(start)

	return c.s
}
