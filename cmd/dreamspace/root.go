package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/holawaleh/dreamspacefrontend/internal/api"
	"github.com/holawaleh/dreamspacefrontend/internal/config"
	"github.com/holawaleh/dreamspacefrontend/internal/metrics"
	"github.com/holawaleh/dreamspacefrontend/internal/seed"
	"github.com/holawaleh/dreamspacefrontend/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "dreamspace",
	Short:        "DreamSpace site API",
	Long:         "Serves the DreamSpace catalog API: tech posts, tutorials, software, products and the admin note.",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "level", cfg.Log.Level, "format", cfg.Log.Format)
	return cfg, nil
}

func storeOptions(cfg *config.Config) store.Options {
	return store.Options{
		URL:      cfg.Database.URL,
		UseMocks: cfg.Database.UseMocks,
		Pool: store.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime),
			ConnectTimeout:  time.Duration(cfg.Database.ConnectTimeout),
		},
	}
}

// server bundles the HTTP server with the store it serves.
type server struct {
	http    *http.Server
	store   store.Store
	backend store.Backend
}

// newServer opens the configured backend, seeds the memory store when
// enabled, and builds the router.
func newServer(ctx context.Context, cfg *config.Config) (*server, error) {
	s, backend, err := store.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Info("store initialized", "backend", string(backend))

	if backend == store.BackendMemory && cfg.Seed.Mock {
		if _, err := seed.Seed(ctx, s); err != nil {
			s.Close()
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
	}

	var routerOpts []api.RouterOption
	if cfg.Metrics.Enabled {
		m := metrics.New()
		if sqlStore, ok := s.(*store.SQLStore); ok {
			if err := m.RegisterDB(sqlStore.DB(), string(backend)); err != nil {
				s.Close()
				return nil, fmt.Errorf("register db metrics: %w", err)
			}
		}
		routerOpts = append(routerOpts, api.WithMetrics(m, cfg.Metrics.Path))
		slog.Info("metrics enabled", "path", cfg.Metrics.Path)
	}

	handler := api.NewHandler(s, backend, Version)
	router := api.NewRouter(handler, routerOpts...)
	slog.Info("router initialized")

	return &server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
		},
		store:   s,
		backend: backend,
	}, nil
}

// shutdown drains in-flight requests, then closes the store.
func (s *server) shutdown(timeout time.Duration) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := s.store.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := setup()
	if err != nil {
		return err
	}

	srv, err := newServer(ctx, cfg)
	if err != nil {
		return err
	}

	return srv.serve(ctx, time.Duration(cfg.Server.ShutdownTimeout))
}

// serve runs the HTTP server until ctx is cancelled or the listener fails.
// A listener failure is returned after the store is closed.
func (s *server) serve(ctx context.Context, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", s.http.Addr, "backend", string(s.backend))
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var err error
	select {
	case <-ctx.Done():
		slog.Info("shutdown initiated")
	case err = <-serveErr:
		if err != nil {
			slog.Error("server error", "error", err)
			err = fmt.Errorf("serve http: %w", err)
		}
	}

	s.shutdown(shutdownTimeout)

	slog.Info("shutdown complete")
	return err
}
