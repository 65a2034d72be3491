package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/scavengerhunt/internal/config"
	"github.com/mcoot/scavengerhunt/internal/dependencies/clock"
	"github.com/mcoot/scavengerhunt/internal/dependencies/random"
	"github.com/mcoot/scavengerhunt/internal/events"
	kafkaevents "github.com/mcoot/scavengerhunt/internal/events/kafka"
	memoryevents "github.com/mcoot/scavengerhunt/internal/events/memory"
	"github.com/mcoot/scavengerhunt/internal/gateway"
	memorygateway "github.com/mcoot/scavengerhunt/internal/gateway/memory"
	twiliogateway "github.com/mcoot/scavengerhunt/internal/gateway/twilio"
	"github.com/mcoot/scavengerhunt/internal/services/catalog"
	"github.com/mcoot/scavengerhunt/internal/services/hunt"
	"github.com/mcoot/scavengerhunt/internal/services/leaderboard"
	"github.com/mcoot/scavengerhunt/internal/services/penalty"
	"github.com/mcoot/scavengerhunt/internal/services/phone"
	"github.com/mcoot/scavengerhunt/internal/storage"
	"github.com/mcoot/scavengerhunt/internal/storage/memory"
	postgresstorage "github.com/mcoot/scavengerhunt/internal/storage/postgres"
	redisstorage "github.com/mcoot/scavengerhunt/internal/storage/redis"
	sqlitestorage "github.com/mcoot/scavengerhunt/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypeRedis    = config.StorageRedis
	StorageTypePostgres = config.StoragePostgres
	StorageTypeSQLite   = config.StorageSQLite
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Gateway   gateway.Gateway
	Publisher events.Publisher

	// Services
	Catalog            *catalog.Catalog
	Machine            *hunt.Machine
	HuntController     *hunt.Controller
	LeaderboardService *leaderboard.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger

	// StorageType selects the storage backend ("memory", "redis", "postgres" or "sqlite")
	// If empty, defaults to "memory"
	StorageType    string
	RedisConfig    *redisstorage.Config
	PostgresConfig *postgresstorage.Config
	SQLitePath     string

	// GatewayType selects how pictures and alerts are sent ("memory" or "twilio")
	GatewayType  string
	TwilioConfig *twiliogateway.Config
	AlertNumber  string

	// EventsType selects the event sink ("none", "memory" or "kafka")
	EventsType  string
	KafkaConfig *kafkaevents.Config

	// Game holds the rule toggles. Zero value means no injuries and no timing.
	Game hunt.Config
	// CatalogPath points at a YAML clue list. If empty, the built-in clues are used.
	CatalogPath string
	// PhoneRegion is the default region for numbers without a country code
	PhoneRegion string
}

// ConfigFrom translates loaded configuration into factory settings
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	return Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		RedisConfig: &redisstorage.Config{
			URL:          cfg.Storage.Redis.URL,
			PoolSize:     cfg.Storage.Redis.PoolSize,
			MinIdleConns: cfg.Storage.Redis.MinIdleConns,
			PlayerTTL:    cfg.Storage.Redis.PlayerTTL,
		},
		PostgresConfig: &postgresstorage.Config{
			URL:             cfg.Storage.Postgres.URL,
			MaxConnections:  cfg.Storage.Postgres.MaxConnections,
			MinConnections:  cfg.Storage.Postgres.MinConnections,
			MaxConnLifetime: cfg.Storage.Postgres.MaxConnLifetime,
		},
		SQLitePath:  cfg.Storage.SQLite.Path,
		GatewayType: cfg.Gateway.Type,
		TwilioConfig: &twiliogateway.Config{
			AccountSID:      cfg.Gateway.Twilio.AccountSID,
			AuthToken:       cfg.Gateway.Twilio.AuthToken,
			FromNumber:      cfg.Gateway.Twilio.FromNumber,
			MaxRetries:      cfg.Gateway.Twilio.MaxRetries,
			InitialInterval: cfg.Gateway.Twilio.InitialInterval,
		},
		AlertNumber: cfg.Gateway.AlertNumber,
		EventsType:  cfg.Events.Type,
		KafkaConfig: &kafkaevents.Config{
			Brokers: cfg.Events.Kafka.Brokers,
			Topic:   cfg.Events.Kafka.Topic,
		},
		Game: hunt.Config{
			InjuryEnabled:   cfg.Game.Injuries(),
			TimingEnabled:   cfg.Game.Timing(),
			PenaltyDuration: cfg.Game.PenaltyDuration,
		},
		CatalogPath: cfg.Game.CatalogPath,
		PhoneRegion: cfg.Game.PhoneRegion,
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []io.Closer
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
		return nil, err
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading clue catalog: %w", err)
		}
		cat = loaded
	}

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	if c, ok := store.(io.Closer); ok {
		closers = append(closers, c)
	}

	gw, err := newGateway(cfg, logger)
	if err != nil {
		return fail(err)
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, publisher)

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, gw, publisher, clk, rnd, cat, cfg.Game, cfg.PhoneRegion, cfg.AlertNumber, logger)
	app.closers = closers

	// Rules as the machine applies them, after its defaults
	game := app.Machine.Config()

	logger.Info("application wired",
		slog.String("storage", storageTypeOrDefault(cfg.StorageType)),
		slog.String("gateway", cfg.GatewayType),
		slog.String("events", cfg.EventsType),
		slog.Int("clues", cat.Size()),
		slog.Bool("injuries", game.InjuryEnabled),
		slog.Bool("timing", game.TimingEnabled),
		slog.Duration("penalty", game.PenaltyDuration),
	)
	return app, nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func newStorage(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Storage, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return postgresstorage.New(ctx, *cfg.PostgresConfig, logger)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlitestorage.New(ctx, cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("invalid StorageType %q", cfg.StorageType)
	}
}

func newGateway(cfg Config, logger *slog.Logger) (gateway.Gateway, error) {
	switch cfg.GatewayType {
	case "", config.GatewayMemory:
		return memorygateway.New(), nil
	case config.GatewayTwilio:
		if cfg.TwilioConfig == nil {
			return nil, errors.New("TwilioConfig required when GatewayType is twilio")
		}
		return twiliogateway.New(*cfg.TwilioConfig, logger)
	default:
		return nil, fmt.Errorf("invalid GatewayType %q", cfg.GatewayType)
	}
}

func newPublisher(cfg Config, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsType {
	case "", config.EventsNone:
		return events.Nop{}, nil
	case config.EventsMemory:
		return memoryevents.New(), nil
	case config.EventsKafka:
		if cfg.KafkaConfig == nil {
			return nil, errors.New("KafkaConfig required when EventsType is kafka")
		}
		return kafkaevents.New(*cfg.KafkaConfig, logger)
	default:
		return nil, fmt.Errorf("invalid EventsType %q", cfg.EventsType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	gw gateway.Gateway,
	publisher events.Publisher,
	clk clock.Clock,
	rnd random.Random,
	cat *catalog.Catalog,
	game hunt.Config,
	region string,
	alertNumber string,
	logger *slog.Logger,
) *App {
	machine := hunt.NewMachine(cat, penalty.Default(), rnd, game)
	controller := hunt.NewController(
		store, machine, cat, gw, publisher,
		phone.NewSanitizer(region), clk, rnd, alertNumber, logger,
	)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Gateway:            gw,
		Publisher:          publisher,
		Catalog:            cat,
		Machine:            machine,
		HuntController:     controller,
		LeaderboardService: leaderboard.New(store),
	}
}

// Close waits for outstanding sends, then releases the event stream and storage
func (a *App) Close() error {
	a.HuntController.Drain()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
