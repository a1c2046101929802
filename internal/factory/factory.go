package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/clock"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/random"
	"github.com/kmuir/dirtyminds-go/internal/services/deck"
	"github.com/kmuir/dirtyminds-go/internal/services/roster"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
	"github.com/kmuir/dirtyminds-go/internal/services/scoring"
	"github.com/kmuir/dirtyminds-go/internal/storage"
	"github.com/kmuir/dirtyminds-go/internal/storage/memory"
	redisstorage "github.com/kmuir/dirtyminds-go/internal/storage/redis"
	"github.com/kmuir/dirtyminds-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DeckService    *deck.Service
	RosterService  *roster.Service
	ScoringService *scoring.Service
	Coordinator    *round.Coordinator
	Registry       *round.Registry
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// RiddlePath is the path to a riddle file (optional)
	// If empty, the built-in riddle pool is used
	RiddlePath string
	// RoundConfig holds game pacing settings (optional)
	// If zero value, defaults to round.DefaultConfig()
	RoundConfig round.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default round config if not provided
	roundCfg := cfg.RoundConfig
	if roundCfg.DeckSize == 0 {
		roundCfg = round.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, roundCfg, logger)

	// Load the riddle pool
	ctx := context.Background()
	if cfg.RiddlePath != "" {
		if err := app.DeckService.LoadFromFile(ctx, cfg.RiddlePath); err != nil {
			return nil, err
		}
	} else {
		if err := app.DeckService.LoadDefault(ctx); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, roundCfg round.Config, logger *slog.Logger) *App {
	// Create services
	deckService := deck.New(store, rnd)
	rosterService := roster.New(clk, rnd)
	scoringService := scoring.New()
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	coordinator := round.NewCoordinator(store, deckService, rosterService, scoringService, clk, rnd, logger, roundCfg)
	registry := round.NewRegistry(store, coordinator, broadcaster, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		DeckService:    deckService,
		RosterService:  rosterService,
		ScoringService: scoringService,
		Coordinator:    coordinator,
		Registry:       registry,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
