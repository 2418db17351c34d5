package grpctools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

var ErrNotServing = errors.New("service is not serving")

// WaitServing polls the health service until it reports SERVING,
// growing the delay by a second per attempt and giving up after maxDelay.
func WaitServing(ctx context.Context, conn grpc.ClientConnInterface, service string, maxDelay time.Duration) error {
	hc := grpc_health_v1.NewHealthClient(conn)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)

		defaultDelay := time.Second

		for {
			err := check(ctx, hc, service)
			if err == nil {
				return
			}

			if defaultDelay > maxDelay {
				errCh <- fmt.Errorf("cannot reach service error: %w", err)

				return
			}

			select {
			case <-ctx.Done():
				errCh <- fmt.Errorf("context error: %w", ctx.Err())

				return
			case <-time.After(defaultDelay):
			}

			defaultDelay += time.Second
		}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case err := <-errCh:
		return err
	}
}

func check(ctx context.Context, hc grpc_health_v1.HealthClient, service string) error {
	callCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	resp, err := hc.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("health check error: %w", err)
	}

	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}

	return nil
}
