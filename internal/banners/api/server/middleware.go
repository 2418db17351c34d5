package server

import (
	"net/http"
	"time"

	"github.com/Leopold1975/current_banner/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

func loggingMiddleware(logg logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logg.Infow("http request",
					"method", r.Method,
					"proto", r.Proto,
					"uri", r.URL.RequestURI(),
					"status", ww.Status(),
					"latency", time.Since(start).String(),
					"client_ip", r.RemoteAddr,
					"user_agent", r.UserAgent(),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
