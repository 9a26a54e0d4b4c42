// Package main is the entry point for the Bukhara menu server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"bukhara/internal/cache"
	"bukhara/internal/config"
	"bukhara/internal/database"
	"bukhara/internal/handlers"
	"bukhara/internal/menu"
	"bukhara/internal/middleware"
	"bukhara/internal/models"
	"bukhara/internal/realtime"
	"bukhara/internal/rest"
	"bukhara/internal/router"
	"bukhara/internal/service"
	"bukhara/internal/storage"
	"bukhara/internal/store"
)

// cacheLogKeep bounds the invalidation log kept in the database.
const cacheLogKeep = 1000

func main() {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	if cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"source", cfg.MenuSource,
	)

	defaultLang, ok := menu.ParseLang(cfg.DefaultLang)
	if !ok {
		slog.Warn("unsupported default language, using uz", "lang", cfg.DefaultLang)
	}

	// Select where menu rows come from.
	var (
		db     *sql.DB
		source service.Source
	)
	switch cfg.MenuSource {
	case config.SourceREST:
		source = rest.NewClient(cfg.RestURL, cfg.RestKey)
		slog.Info("menu source: rest", "url", cfg.RestURL)
	default:
		db, err = database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		// Run pending migrations.
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		source = store.NewSource(db)
	}

	// Connect to Valkey for the per-language menu cache (optional).
	var menuCache service.MenuCache
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, menu cache disabled", "error", err)
		} else {
			defer valkeyClient.Close()
			menuCache = cache.NewMenuCache(valkeyClient, cfg.CacheTTL)
		}
	}

	// Connect to S3-compatible object storage (optional: bare image keys
	// then resolve against the site root).
	imageOpts := menu.ImageOptions{BasePath: cfg.BasePath}
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		imageOpts.Objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, bare image keys resolve locally")
	}

	labels := menu.DefaultLabels()
	projector := menu.NewProjector(menu.NewImageResolver(imageOpts), labels, language.Und)
	svc := service.New(source, projector, menuCache)

	// Change notifications: invalidate the cache, record the change, then
	// tell connected clients.
	hub := realtime.NewHub()
	var cacheLog *store.CacheLogStore
	if db != nil {
		cacheLog = store.NewCacheLogStore(db)
		if n, err := cacheLog.Prune(context.Background(), cacheLogKeep); err != nil {
			slog.Warn("failed to prune cache log", "error", err)
		} else if n > 0 {
			slog.Info("cache log pruned", "deleted", n)
		}
	}
	onChange := func(ctx context.Context, c models.Change) {
		svc.Invalidate(ctx, c)
		if cacheLog != nil {
			cacheLog.Log(ctx, c)
		}
		hub.Publish(c)
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	if db != nil {
		listener := realtime.NewListener(cfg.DSN(), onChange)
		go listener.Run(bgCtx)
	} else {
		poller := realtime.NewPoller(svc, cfg.PollInterval, onChange)
		go poller.Run(bgCtx)
	}

	ws := realtime.NewWSServer(hub, cfg.CORSOrigins)

	var changes handlers.ChangeLog
	if cacheLog != nil {
		changes = cacheLog
	}
	menuHandlers := handlers.NewMenu(svc, labels, changes)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(menuHandlers, ws, router.Options{
		DefaultLang: defaultLang,
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: limiter,
	})

	// WriteTimeout stays zero so WebSocket connections are not cut; /api
	// requests are bounded by the router's timeout middleware.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	stopBackground()
	slog.Info("closing live updates", "clients", ws.ClientCount(), "subscribers", hub.Len())
	ws.Close()

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
