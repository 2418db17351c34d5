package grpctools_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Leopold1975/current_banner/internal/pkg/grpctools"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startHealth(t *testing.T) (*health.Server, *grpc.ClientConn) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	hs := health.NewServer()
	s := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)

	go s.Serve(lis) //nolint:errcheck
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return hs, conn
}

func TestWaitServing(t *testing.T) {
	_, conn := startHealth(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, grpctools.WaitServing(ctx, conn, "", 0))
}

func TestWaitServingBecomesServing(t *testing.T) {
	hs, conn := startHealth(t)
	hs.SetServingStatus("banner.v1.BannerService", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	time.AfterFunc(200*time.Millisecond, func() {
		hs.SetServingStatus("banner.v1.BannerService", grpc_health_v1.HealthCheckResponse_SERVING)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, grpctools.WaitServing(ctx, conn, "banner.v1.BannerService", 3*time.Second))
}

func TestWaitServingGivesUp(t *testing.T) {
	hs, conn := startHealth(t)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := grpctools.WaitServing(ctx, conn, "", 0)
	require.ErrorIs(t, err, grpctools.ErrNotServing)
}

func TestWaitServingContextDone(t *testing.T) {
	hs, conn := startHealth(t)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := grpctools.WaitServing(ctx, conn, "", time.Minute)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
