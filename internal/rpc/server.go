// Package rpc exposes the engine as a small JSON-RPC style HTTP API.
package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
	"github.com/YutaGoto/imasparql-mcp-server/internal/metrics"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

type Server struct {
	echo   *echo.Echo
	engine engine.Querier
	logger *slog.Logger
}

// NewServer wires the routes. m may be nil, in which case /metrics is not
// served.
func NewServer(q engine.Querier, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"duration_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				logger.Error("http request failed", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.Debug("http request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	s := &Server{echo: e, engine: q, logger: logger}

	e.POST("/mcp", s.handleCall)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting http server", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
