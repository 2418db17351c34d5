package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	MetricRequestCount = "Request Count"
	MetricFailureCount = "Failure Count"
	MetricFailureRate  = "Failure Rate"
	MetricAvgResponse  = "Average Response Time"
	MetricRPS          = "Requests/s"
)

var (
	ErrNoStats           = errors.New("stats file does not exist")
	ErrEmptyStats        = errors.New("stats file is empty")
	ErrMissingMetric     = errors.New("metric not found")
	ErrInvalidMetric     = errors.New("invalid metric value")
	ErrThresholdExceeded = errors.New("threshold exceeded")
)

type Bound int

const (
	// Max fails when the value is above the limit.
	Max Bound = iota
	// Min fails when the value is below the limit.
	Min
)

type Threshold struct {
	Metric string
	Limit  float64
	Bound  Bound
}

// DefaultThresholds: average response under a second, under 1% failures,
// at least 50 requests per second.
var DefaultThresholds = []Threshold{ //nolint:gochecknoglobals
	{Metric: MetricAvgResponse, Limit: 1000, Bound: Max},
	{Metric: MetricFailureRate, Limit: 1.0, Bound: Max},
	{Metric: MetricRPS, Limit: 50, Bound: Min},
}

// Validate checks the last row of a stats CSV against thresholds.
// Every violation is reported in the returned error.
func Validate(path string, thresholds []Threshold) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoStats, path)
		}

		return fmt.Errorf("open stats error: %w", err)
	}
	defer f.Close()

	stats, err := lastRow(f)
	if err != nil {
		return err
	}

	var errs []error

	for _, th := range thresholds {
		raw, ok := stats[th.Metric]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingMetric, th.Metric))

			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q=%q", ErrInvalidMetric, th.Metric, raw))

			continue
		}

		switch {
		case th.Bound == Max && v > th.Limit:
			errs = append(errs, fmt.Errorf("%w for %s: %g > %g", ErrThresholdExceeded, th.Metric, v, th.Limit))
		case th.Bound == Min && v < th.Limit:
			errs = append(errs, fmt.Errorf("%w for %s: %g < %g", ErrThresholdExceeded, th.Metric, v, th.Limit))
		}
	}

	return errors.Join(errs...)
}

func lastRow(r io.Reader) (map[string]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv error: %w", err)
	}

	if len(records) < 2 { //nolint:gomnd
		return nil, ErrEmptyStats
	}

	header, last := records[0], records[len(records)-1]

	stats := make(map[string]string, len(header))
	for i, k := range header {
		if i < len(last) {
			stats[k] = last[i]
		}
	}

	return stats, nil
}
