package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/textcase/internal/adapters/http/api"
	"github.com/okian/textcase/internal/adapters/http/site"
	"github.com/okian/textcase/internal/adapters/http/swagger"
	service "github.com/okian/textcase/internal/app"
	"github.com/okian/textcase/internal/config"
	"github.com/okian/textcase/pkg/logger"
	"github.com/okian/textcase/pkg/metrics"

	"github.com/gorilla/mux"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Initialize logging with defaults so config errors can be reported.
	if err := logger.Init(); err != nil {
		return errors.Join(errors.New("failed to initialize logging"), err)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env -> PORT)
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.Join(errors.New("failed to load config"), err)
	}

	// Rebuild the logger with the configured sinks.
	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithFile(logger.FileConfig{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAgeDays: cfg.LogMaxAgeDays,
		}),
	); err != nil {
		return errors.Join(errors.New("failed to initialize logging"), err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Metrics must be configured before anything captures the registry.
	initMetrics(cfg)

	svc := service.New(service.WithLogger(log.Named("service")))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(ctx, cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return serve(ctx, srv, log)
}

// initMetrics rebuilds the global metrics manager from cfg.
func initMetrics(cfg *config.Config) *metrics.Manager {
	return metrics.Init(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithHistogramBuckets(cfg.MetricsBucketsMs),
	)
}

// newRouter registers every route on a fresh router and wraps it in the
// request middleware.
func newRouter(ctx context.Context, cfg *config.Config, svc api.Transformer, log logger.Logger) http.Handler {
	r := mux.NewRouter()

	apiServer := api.NewServer(svc,
		api.WithLogger(log.Named("http")),
		api.WithCORSOrigin(cfg.CORSAllowedOrigin),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithMetricsPath(cfg.MetricsPath),
	)
	apiServer.Register(ctx, r)
	site.Register(ctx, r)
	swagger.Register(ctx, r)

	return apiServer.Handler(r)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}
