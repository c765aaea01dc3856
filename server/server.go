// Package server hosts the HTTP surface: the v1 API, health checks, and the
// Prometheus metrics endpoint, with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	apiv1 "github.com/younghak9905/2-hertz-ai/server/router/api/v1"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(_ context.Context, p *profile.Profile, st *store.Store, tuningService *tuning.Service) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latencyMs", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))

	s := &Server{
		Profile:    p,
		Store:      st,
		echoServer: e,
	}

	e.GET("/healthz", func(c echo.Context) error {
		if err := st.Ping(c.Request().Context()); err != nil {
			return c.String(http.StatusServiceUnavailable, "store unreachable")
		}
		return c.String(http.StatusOK, "Service ready.")
	})
	e.GET("/metrics", echo.WrapHandler(tuningService.Metrics().Handler()))

	apiv1.NewAPIV1Service(p, st, tuningService).RegisterRoutes(e)

	return s, nil
}

// Start begins serving. It returns immediately; startup errors surface on the
// returned server's logs and shut the process down through Shutdown.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("server started", "address", address, "mode", s.Profile.Mode, "version", s.Profile.Version)
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown complete")
}
