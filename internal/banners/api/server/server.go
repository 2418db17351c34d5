package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/services/bannerservice"
	"github.com/Leopold1975/current_banner/internal/pkg/config"
	"github.com/Leopold1975/current_banner/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// SourceHeader mirrors the gRPC x-banner-source header.
const SourceHeader = "X-Banner-Source"

type Server struct {
	serv          *http.Server
	bannerService BannerService
	lg            logger.Logger
}

type BannerService interface {
	GetCurrentBanner(context.Context, bannerservice.GetCurrentBannerRequest) bannerservice.CurrentBanner
}

func New(cfg config.Server, bs BannerService, lg logger.Logger) *Server {
	s := &Server{
		bannerService: bs,
		lg:            lg,
	}

	serv := &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	s.serv = serv

	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware(s.lg))

	r.Get("/healthz", s.GetHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/banner", s.GetCurrentBanner)
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}

		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.serv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}

// Current banner for a location
// (GET /v1/banner?location=US).
func (s *Server) GetCurrentBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")

	b := s.bannerService.GetCurrentBanner(r.Context(), bannerservice.GetCurrentBannerRequest{
		Location: r.URL.Query().Get("location"),
	})

	resp := GetCurrentBannerResponse{
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		ImageFormat: b.ImageFormat,
	}

	bts, err := json.Marshal(resp)
	if err != nil {
		handleError(w, fmt.Errorf("encode error: %w", err), http.StatusInternalServerError)

		return
	}

	w.Header().Set(SourceHeader, string(b.Source))
	w.WriteHeader(http.StatusOK)
	w.Write(bts) //nolint:errcheck
}

// (GET /healthz).
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func handleError(w http.ResponseWriter, err error, code int) {
	w.WriteHeader(code)

	e := Error{err.Error()}

	w.Write(e.ToJSON()) //nolint:errcheck
}
