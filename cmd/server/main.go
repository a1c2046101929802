package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kmuir/dirtyminds-go/internal/api"
	"github.com/kmuir/dirtyminds-go/internal/factory"
	redisstorage "github.com/kmuir/dirtyminds-go/internal/storage/redis"
)

// serverConfig is populated from DMGAME_* environment variables
type serverConfig struct {
	Host            string        `envconfig:"HOST" default:""`
	Port            int           `envconfig:"PORT" default:"8080"`
	BaseURL         string        `envconfig:"BASE_URL"`
	LogLevel        slog.Level    `envconfig:"LOG_LEVEL" default:"INFO"`
	RiddlePath      string        `envconfig:"RIDDLE_PATH" default:"data/riddles.txt"`
	StorageType     string        `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL        string        `envconfig:"REDIS_URL"`
	SweepInterval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
	SessionMaxAge   time.Duration `envconfig:"SESSION_MAX_AGE" default:"24h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

func main() {
	var envCfg serverConfig
	if err := envconfig.Process("dmgame", &envCfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: envCfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		RiddlePath:  envCfg.RiddlePath,
		Logger:      logger,
		StorageType: envCfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("DMGAME_REDIS_URL required when DMGAME_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Registry.Close()

	logger.Info("riddle pool loaded", slog.Int("count", app.DeckService.Count()))

	baseURL := envCfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", envCfg.Port)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Registry:   app.Registry,
		HubManager: app.HubManager,
		BaseURL:    baseURL,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = envCfg.Host
	serverConfig.Port = envCfg.Port
	serverConfig.ShutdownTimeout = envCfg.ShutdownTimeout
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Periodically drop finished and stale sessions
	go func() {
		ticker := time.NewTicker(envCfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := app.Registry.Sweep(ctx, envCfg.SessionMaxAge)
				if err != nil {
					logger.Warn("session sweep failed", slog.String("error", err.Error()))
					continue
				}
				if removed > 0 {
					logger.Info("session sweep", slog.Int("removed", removed))
				}
				app.HubManager.CleanupEmptyHubs()
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
