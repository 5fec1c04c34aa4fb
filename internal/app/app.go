package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/quizmaker-backend/internal/adapter/provider/wordnik"
	"github.com/heartmarshall/quizmaker-backend/internal/config"
	quizsvc "github.com/heartmarshall/quizmaker-backend/internal/service/quiz"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quizbuilder"
	"github.com/heartmarshall/quizmaker-backend/internal/transport/middleware"
)

// Run loads configuration, connects the configured store and serves the
// API until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Driver.String()),
		slog.String("log_level", cfg.Log.Level),
	)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	provider := wordnik.NewProvider(wordnik.Options{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Limit:   cfg.Provider.Limit,
		Timeout: cfg.Provider.Timeout,
	}, logger)

	builder := quizbuilder.NewBuilder(logger, store, provider, quizbuilder.Options{
		ProviderTimeout: cfg.Provider.Timeout,
		StoreTimeout:    cfg.Store.OpTimeout,
	})

	sessions := quizbuilder.NewRegistry(logger, cfg.Quiz.SessionTTL, cfg.Quiz.MaxSessions)
	sweep := cfg.Quiz.SessionSweep
	if sweep <= 0 {
		sweep = cfg.Quiz.SessionTTL / 4
	}
	sessions.Start(ctx, sweep)
	defer sessions.Stop()

	svc := Services{
		Store:     store,
		StoreName: cfg.Store.Driver.String(),
		Builder:   builder,
		Sessions:  sessions,
		Quizzes:   quizsvc.NewService(logger, store, cfg.Share),
	}
	if cfg.RateLimit.Enabled {
		svc.Limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer svc.Limiter.Stop()
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHTTPHandler(logger, cfg, svc),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, logger, cfg.Server)
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, cfg config.ServerConfig) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
