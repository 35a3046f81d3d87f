// Package main provides the gone binary entry point that starts the HTTP server
// for one-time secret sharing. It loads configuration from environment variables
// and command-line flags, validates them, and then starts the HTTP server.
//
// The application flow:
//  1. Load defaults and apply environment variables and flags.
//  2. Validate configuration.
//  3. Select a storage backend (on-disk if --store-path is set, in-memory otherwise).
//  4. Wire the application service, janitor, metrics manager, and HTTP handler.
//  5. Start the background janitor and metrics loops, then serve HTTP.
//
// It blocks until the server exits with an error (other than http.ErrServerClosed).
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/haukened/gone/internal/app"
	"github.com/haukened/gone/internal/config"
	"github.com/haukened/gone/internal/httpx"
	"github.com/haukened/gone/internal/janitor"
	"github.com/haukened/gone/internal/metrics"
	"github.com/haukened/gone/internal/store"
	"github.com/haukened/gone/internal/store/diskstore"
	"github.com/haukened/gone/internal/store/facade"
	"github.com/haukened/gone/internal/store/memory"
	"github.com/haukened/gone/web"
)

// realClock implements app.Clock using time.Now.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func loadConfig() *config.Config {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(2)
	}
	return cfg
}

// buildBackend selects the on-disk backend when cfg.StorePath is set, and
// the in-memory backend otherwise. Aggregate capacity scales
// store.MaxSecretBytes by the backend-specific multiplier defined in the
// store package.
func buildBackend(cfg *config.Config) store.Backend {
	if cfg.StorePath != "" {
		backend, err := diskstore.New(cfg.StorePath, store.DiskAggregateMultiplier*store.MaxSecretBytes)
		if err != nil {
			slog.Error("init disk store", "dir", cfg.StorePath, "err", err)
			os.Exit(3)
		}
		return backend
	}
	return memory.New(store.MemoryAggregateMultiplier * store.MaxSecretBytes)
}

func buildService(backend store.Backend, clock app.Clock, mgr *metrics.Manager) (*app.Service, *facade.Store) {
	fs := facade.New(backend)
	return &app.Service{Store: fs, Clock: clock, MaxBytes: store.MaxSecretBytes, Metrics: mgr}, fs
}

func buildHandler(cfg *config.Config, svc *app.Service, fs *facade.Store, mgr *metrics.Manager) http.Handler {
	readiness := func(context.Context) error {
		_, err := fs.Size()
		return err
	}
	h := httpx.New(svc, store.MaxSecretBytes, readiness)
	h.Assets = web.Open(cfg.WebPath)
	h.CORSOrigin = cfg.CORS

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(mgr, ""))
	mux.Handle("/", h.Router())
	return mux
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + strconv.FormatUint(uint64(cfg.Port), 10),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func applyThreads(cfg *config.Config) {
	if cfg.Threads > 0 {
		runtime.GOMAXPROCS(int(cfg.Threads))
	}
}

func storeKind(cfg *config.Config) string {
	if cfg.StorePath != "" {
		return "disk"
	}
	return "memory"
}

func run() error {
	cfg := loadConfig()
	applyThreads(cfg)

	ctx := context.Background()

	mgr := metrics.New(metrics.Config{Logger: slog.Default()})
	mgr.Start(ctx)
	defer mgr.Stop()

	backend := buildBackend(cfg)
	clock := realClock{}
	svc, fs := buildService(backend, clock, mgr)

	jan := janitor.New(fs, janitor.Config{Interval: time.Minute, Logger: slog.Default()})
	jan.Start(ctx)
	defer jan.Stop()

	srv := newServer(cfg, buildHandler(cfg, svc, fs, mgr))
	slog.Info("starting server", "addr", srv.Addr, "pid", os.Getpid(), "store", storeKind(cfg))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
