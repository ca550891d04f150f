package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/gamechanger-stats/seasonstats/internal/adapters/cache"
	"github.com/gamechanger-stats/seasonstats/internal/adapters/http/api"
	"github.com/gamechanger-stats/seasonstats/internal/adapters/upstream"
	app "github.com/gamechanger-stats/seasonstats/internal/app"
	"github.com/gamechanger-stats/seasonstats/internal/config"
	"github.com/gamechanger-stats/seasonstats/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.UpstreamToken == "" {
		log.Warn(ctx, "no upstream token configured; set one via POST /api/token")
	}

	client := upstream.New(cfg.UpstreamToken,
		upstream.WithBaseURL(cfg.UpstreamBaseURL),
		upstream.WithConcurrency(cfg.FetchConcurrency),
	)

	store := newCache(ctx, cfg, log)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "closing cache failed", logger.Error(err))
		}
	}()

	svc := app.New(client, store,
		app.WithLogger(log),
		app.WithQualifyPercents(cfg.BattingQualifyPct, cfg.PitchingQualifyPct, cfg.FieldingQualifyPct),
		app.WithAdjustmentFactor(cfg.AdjustmentFactor),
		app.WithStrictnessIndex(cfg.Strictness),
		app.WithMaxLeaderboardLimit(cfg.MaxLeaderboardLimit),
	)

	apiServer := api.NewServer(svc, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Router(ctx),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newCache builds the configured cache backend. An unreachable redis is
// tolerated at startup; the backend degrades to misses until it recovers.
func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) cache.Cache {
	ttls := []cache.Option{
		cache.WithOrganizationsTTL(cfg.OrganizationsTTL),
		cache.WithSnapshotTTL(cfg.SnapshotTTL),
	}

	if cfg.CacheBackend == config.CacheRedis {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unreachable at startup",
				logger.String("addr", cfg.RedisAddr), logger.Error(err))
		}
		log.Info(ctx, "using redis cache", logger.String("addr", cfg.RedisAddr))
		return cache.NewRedisCache(client, ttls...)
	}

	log.Info(ctx, "using in-memory cache")
	return cache.NewMemoryCache(ttls...)
}
