package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Leopold1975/current_banner/internal/banners/api/bannerv1"
	"github.com/Leopold1975/current_banner/internal/banners/services/bannerservice"
	"github.com/Leopold1975/current_banner/internal/pkg/config"
	"github.com/Leopold1975/current_banner/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
)

// SourceHeader carries the selection reason as response header metadata.
const SourceHeader = "x-banner-source"

type Server struct {
	serv          *grpc.Server
	health        *health.Server
	bannerService BannerService
	addr          string
	lg            logger.Logger
}

type BannerService interface {
	GetCurrentBanner(context.Context, bannerservice.GetCurrentBannerRequest) bannerservice.CurrentBanner
}

func New(cfg config.GRPC, bs BannerService, lg logger.Logger) *Server {
	opts := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(loggingInterceptor(lg), recoveryInterceptor(lg)),
	}

	if cfg.NumStreamWorkers > 0 {
		opts = append(opts, grpc.NumStreamWorkers(cfg.NumStreamWorkers))
	}

	if cfg.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(cfg.MaxConcurrentStreams))
	}

	if cfg.ConnectionTimeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(cfg.ConnectionTimeout))
	}

	s := &Server{
		serv:          grpc.NewServer(opts...),
		health:        health.NewServer(),
		bannerService: bs,
		addr:          cfg.Addr,
		lg:            lg,
	}

	bannerv1.RegisterBannerServiceServer(s.serv, s)
	grpc_health_v1.RegisterHealthServer(s.serv, s.health)
	reflection.Register(s.serv)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(bannerv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return s
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig

	lis, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s error: %w", s.addr, err)
	}

	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.serv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.serv.GracefulStop()

		if err := <-errCh; err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve error: %w", err)
		}

		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}

		return fmt.Errorf("serve error: %w", err)
	}
}

// Shutdown stops gracefully, forcing a hard stop when ctx ends first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})

	go func() {
		s.serv.GracefulStop()
		close(done)
	}()

	select {
	case <-ctx.Done():
		s.serv.Stop()

		return fmt.Errorf("context error: %w", ctx.Err())
	case <-done:
		return nil
	}
}

// GetCurrentBanner never returns an error: a missing banner degrades to the default one.
func (s *Server) GetCurrentBanner(ctx context.Context,
	req *bannerv1.GetCurrentBannerRequest,
) (*bannerv1.GetCurrentBannerResponse, error) {
	b := s.bannerService.GetCurrentBanner(ctx, bannerservice.GetCurrentBannerRequest{
		Location: req.GetLocation(),
	})

	if err := grpc.SetHeader(ctx, metadata.Pairs(SourceHeader, string(b.Source))); err != nil {
		s.lg.Debugf("set header error: %s", err.Error())
	}

	return &bannerv1.GetCurrentBannerResponse{
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		ImageFormat: b.ImageFormat,
	}, nil
}
