package bench_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/api/bannerv1"
	"github.com/Leopold1975/current_banner/internal/pkg/bench"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func writeStats(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestValidatePasses(t *testing.T) {
	path := writeStats(t, "Average Response Time,Failure Rate,Requests/s\n"+
		"5000,50,1\n"+
		"12.5,0.00,120.3\n")

	require.NoError(t, bench.Validate(path, bench.DefaultThresholds))
}

func TestValidateCollectsViolations(t *testing.T) {
	path := writeStats(t, "Average Response Time,Failure Rate,Requests/s\n1500,2.5,10\n")

	err := bench.Validate(path, bench.DefaultThresholds)
	require.ErrorIs(t, err, bench.ErrThresholdExceeded)
	require.Contains(t, err.Error(), "Average Response Time")
	require.Contains(t, err.Error(), "Failure Rate")
	require.Contains(t, err.Error(), "Requests/s")
}

func TestValidateMetricErrors(t *testing.T) {
	path := writeStats(t, "Average Response Time,Failure Rate\nfast,0\n")

	err := bench.Validate(path, bench.DefaultThresholds)
	require.ErrorIs(t, err, bench.ErrInvalidMetric)
	require.ErrorIs(t, err, bench.ErrMissingMetric)
	require.NotErrorIs(t, err, bench.ErrThresholdExceeded)
}

func TestValidateFileErrors(t *testing.T) {
	err := bench.Validate(filepath.Join(t.TempDir(), "absent.csv"), bench.DefaultThresholds)
	require.ErrorIs(t, err, bench.ErrNoStats)

	err = bench.Validate(writeStats(t, ""), bench.DefaultThresholds)
	require.ErrorIs(t, err, bench.ErrEmptyStats)

	err = bench.Validate(writeStats(t, "Requests/s\n"), bench.DefaultThresholds)
	require.ErrorIs(t, err, bench.ErrEmptyStats)
}

func TestSummaryWriteCSVRoundTrip(t *testing.T) {
	s := bench.Summary{
		Requests: 200,
		Failures: 1,
		Total:    2 * time.Second,
		Elapsed:  2 * time.Second,
	}

	require.InDelta(t, 0.5, s.FailureRate(), 1e-9)
	require.InDelta(t, 10.0, s.AvgResponse(), 1e-9)
	require.InDelta(t, 100.0, s.RPS(), 1e-9)

	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf))
	require.Equal(t, "Request Count,Failure Count,Failure Rate,Average Response Time,Requests/s\n"+
		"200,1,0.50,10.00,100.00\n", buf.String())

	require.NoError(t, bench.Validate(writeStats(t, buf.String()), bench.DefaultThresholds))
}

func TestSummaryZero(t *testing.T) {
	var s bench.Summary
	require.Zero(t, s.FailureRate())
	require.Zero(t, s.AvgResponse())
	require.Zero(t, s.RPS())
}

type clientStub struct {
	mu        sync.Mutex
	locations map[string]int
	calls     atomic.Int64
}

func (c *clientStub) GetCurrentBanner(_ context.Context, in *bannerv1.GetCurrentBannerRequest,
	_ ...grpc.CallOption,
) (*bannerv1.GetCurrentBannerResponse, error) {
	n := c.calls.Add(1)

	c.mu.Lock()
	c.locations[in.Location]++
	c.mu.Unlock()

	switch {
	case n%10 == 0:
		return nil, errors.New("unavailable")
	case in.Location == "XX":
		return &bannerv1.GetCurrentBannerResponse{}, nil
	default:
		return &bannerv1.GetCurrentBannerResponse{Title: "Default Banner", ImageFormat: "png"}, nil
	}
}

func TestRun(t *testing.T) {
	client := &clientStub{locations: make(map[string]int)}

	var failures atomic.Int64

	s := bench.Run(context.Background(), client, bench.Options{
		Locations: []string{"US", "XX"},
		Workers:   4,
		Duration:  100 * time.Millisecond,
		Wait:      time.Millisecond,
	}, func(error) { failures.Add(1) })

	require.Positive(t, s.Requests)
	require.Equal(t, int(failures.Load()), s.Failures)
	require.Positive(t, s.Failures)
	require.Less(t, s.Failures, s.Requests)
	require.GreaterOrEqual(t, s.Elapsed, 100*time.Millisecond)

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Positive(t, client.locations["US"])
	require.Positive(t, client.locations["XX"])
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	client := &clientStub{locations: make(map[string]int)}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	s := bench.Run(ctx, client, bench.Options{Workers: 2, Duration: time.Minute, Wait: time.Millisecond}, nil)

	require.Less(t, time.Since(start), 10*time.Second)
	require.Positive(t, s.Requests)

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Positive(t, client.locations["US"])
}
