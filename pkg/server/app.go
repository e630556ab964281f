package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TradeMind/pkg/config"
	xhttp "TradeMind/pkg/http"
	applogger "TradeMind/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	closers    []io.Closer
	// janitor runs every cleanupEvery while the app is up.
	janitor      func()
	cleanupEvery time.Duration
}

// New creates a new App. Closers are released in reverse order on shutdown.
func New(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, closers ...io.Closer) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{cfg: cfg, logger: l, httpServer: srv, closers: closers}
}

// SetJanitor registers periodic housekeeping, such as pruning rate limiter buckets.
func (a *App) SetJanitor(every time.Duration, fn func()) {
	a.cleanupEvery = every
	a.janitor = fn
}

// Server exposes the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("trademind started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.String("chart_backend", a.cfg.Charts.Backend),
		applogger.Bool("redis", a.cfg.Cache.Redis.Enabled),
	)

	if a.janitor != nil && a.cleanupEvery > 0 {
		go a.runJanitor(ctx)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) runJanitor(ctx context.Context) {
	t := time.NewTicker(a.cleanupEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.janitor()
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	a.logger.RemoveCollector()
	return nil
}
