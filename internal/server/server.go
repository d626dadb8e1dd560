// Package server serves the dashboard over HTTP while the stats document loads.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/naka-gawa/github-stats-dashboard/internal/usecase"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take after a stop signal.
const shutdownTimeout = 5 * time.Second

// App wires the page controller to an echo server.
type App struct {
	Echo *echo.Echo

	page     *usecase.Page
	linkHost string
	logger   zerolog.Logger
}

// New creates an App with its middleware and routes in place.
func New(page *usecase.Page, linkHost string, logger zerolog.Logger) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Echo:     e,
		page:     page,
		linkHost: linkHost,
		logger:   logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("Server: request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
	}))

	// The stats document is meant to be readable from any origin.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
}

func (a *App) setupRoutes() {
	e := a.Echo
	e.GET("/", a.handleIndex)
	e.GET("/index.html", a.handleIndex)
	e.GET("/data.json", a.handleData)
	e.GET("/api/dashboard", a.handleDashboard)
	e.GET("/healthz", a.handleHealth)
	e.GET("/favicon.ico", a.handleFavicon)
}

// Run serves on ln and loads the stats document concurrently, so requests
// arriving before the fetch settles see the loading page. It returns once ctx
// is done and the server has shut down.
func (a *App) Run(ctx context.Context, ln net.Listener) error {
	a.Echo.Listener = ln
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", ln.Addr().String()).Msg("Server: listening")
		if err := a.Echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		state := a.page.Load(gctx)
		a.logger.Info().Str("state", state.Name()).Msg("Server: stats document settled")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("Server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Listen binds addr. When the port is taken, the next ports up to tries in
// total are attempted in turn. Port 0 is bound once.
func Listen(addr string, tries int) (net.Listener, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listen port %q: %w", portStr, err)
	}
	if port == 0 || tries < 1 {
		tries = 1
	}

	var lastErr error
	for i := 0; i < tries; i++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port+i))
		ln, err := net.Listen("tcp", candidate)
		if err == nil {
			return ln, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to listen on %s (tried %d ports): %w", addr, tries, lastErr)
}
