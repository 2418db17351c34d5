package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/api/grpcserver"
	"github.com/Leopold1975/current_banner/internal/banners/api/server"
	"github.com/Leopold1975/current_banner/internal/banners/repository/assetrepo/filesystem"
	"github.com/Leopold1975/current_banner/internal/banners/repository/bannerrepo/jsonfile"
	"github.com/Leopold1975/current_banner/internal/banners/services/bannerservice"
	"github.com/Leopold1975/current_banner/internal/pkg/config"
	"github.com/Leopold1975/current_banner/internal/pkg/otel"
	"github.com/Leopold1975/current_banner/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type BannersApp struct {
	servers       map[string]Server
	lg            logger.Logger
	cfg           config.Config
	shutdownTrace func(context.Context) error
}

func New(ctx context.Context, cfg config.Config) (BannersApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return BannersApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	return NewWithLogger(ctx, cfg, lg)
}

func NewWithLogger(ctx context.Context, cfg config.Config, lg logger.Logger) (BannersApp, error) {
	shutdownTrace, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		return BannersApp{}, fmt.Errorf("otel setup error: %w", err)
	}

	banners := jsonfile.New(cfg.Banners.ConfigDir, lg).Load()
	assets := filesystem.New(cfg.Banners.ContentDir)

	bannerService := bannerservice.New(banners, assets, lg)

	servers := map[string]Server{
		"grpc": grpcserver.New(cfg.GRPC, bannerService, lg),
	}

	if cfg.Server.Addr != "" {
		servers["http"] = server.New(cfg.Server, bannerService, lg)
	}

	return BannersApp{
		servers:       servers,
		lg:            lg,
		cfg:           cfg,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Run serves until ctx is done or a server fails.
func (ba *BannersApp) Run(ctx context.Context) error {
	ba.lg.Infow("STARTED SERVER", "grpc_addr", ba.cfg.GRPC.Addr, "http_addr", ba.cfg.Server.Addr)

	g, gctx := errgroup.WithContext(ctx)

	for name, s := range ba.servers {
		g.Go(func() error {
			if err := s.Start(gctx); err != nil {
				return fmt.Errorf("%s server error: %w", name, err)
			}

			return nil
		})
	}

	errRun := g.Wait()
	if errRun != nil {
		ba.lg.Errorf("server run error: %s", errRun.Error())
	}

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := ba.Stop(ctxS); err != nil { //nolint:contextcheck
		ba.lg.Errorf("server shutdown error: %s", err.Error())

		return errors.Join(errRun, err)
	}

	return errRun
}

func (ba *BannersApp) Stop(ctx context.Context) error {
	var errs []error

	for name, s := range ba.servers {
		if err := s.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown error: %w", name, err))
		}
	}

	if err := ba.shutdownTrace(ctx); err != nil {
		errs = append(errs, fmt.Errorf("trace shutdown error: %w", err))
	}

	if len(errs) != 0 {
		return errors.Join(errs...)
	}

	ba.lg.Info("Shutdowned successfully")

	return nil
}
