package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in configuration
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	GatewayMemory = "memory"
	GatewayTwilio = "twilio"

	EventsNone   = "none"
	EventsMemory = "memory"
	EventsKafka  = "kafka"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Gateway GatewayConfig `yaml:"gateway"`
	Events  EventsConfig  `yaml:"events"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// StorageConfig selects and configures the player store
type StorageConfig struct {
	Type     string         `yaml:"type"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	PlayerTTL    time.Duration `yaml:"player_ttl"`
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	URL             string        `yaml:"url"`
	MaxConnections  int32         `yaml:"max_connections"`
	MinConnections  int32         `yaml:"min_connections"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

// SQLiteConfig holds the SQLite database location
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// GatewayConfig selects how outbound messages are sent
type GatewayConfig struct {
	Type        string       `yaml:"type"`
	AlertNumber string       `yaml:"alert_number"`
	Twilio      TwilioConfig `yaml:"twilio"`
}

// TwilioConfig holds Twilio credentials and retry settings
type TwilioConfig struct {
	AccountSID      string        `yaml:"account_sid"`
	AuthToken       string        `yaml:"auth_token"`
	FromNumber      string        `yaml:"from_number"`
	MaxRetries      uint64        `yaml:"max_retries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
}

// EventsConfig selects where game events are published
type EventsConfig struct {
	Type  string      `yaml:"type"`
	Kafka KafkaConfig `yaml:"kafka"`
}

// KafkaConfig holds Kafka connection configuration
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// GameConfig holds hunt rules
type GameConfig struct {
	InjuryEnabled   *bool         `yaml:"injury_enabled"`
	TimingEnabled   *bool         `yaml:"timing_enabled"`
	PenaltyDuration time.Duration `yaml:"penalty_duration"`
	CatalogPath     string        `yaml:"catalog_path"` // empty uses the built-in clues
	PhoneRegion     string        `yaml:"phone_region"`
}

// Injuries reports whether the injury mechanic is on (default true)
func (g GameConfig) Injuries() bool {
	return g.InjuryEnabled == nil || *g.InjuryEnabled
}

// Timing reports whether fastest-interval tracking is on (default true)
func (g GameConfig) Timing() bool {
	return g.TimingEnabled == nil || *g.TimingEnabled
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, then applies defaults and
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	// Storage defaults
	if c.Storage.Type == "" {
		c.Storage.Type = StorageMemory
	}
	if c.Storage.Redis.URL == "" {
		c.Storage.Redis.URL = "redis://localhost:6379"
	}
	if c.Storage.Redis.PoolSize == 0 {
		c.Storage.Redis.PoolSize = 10
	}
	if c.Storage.Redis.MinIdleConns == 0 {
		c.Storage.Redis.MinIdleConns = 2
	}
	if c.Storage.Postgres.URL == "" {
		c.Storage.Postgres.URL = "postgres://localhost:5432/scavenger?sslmode=disable"
	}
	if c.Storage.Postgres.MaxConnections == 0 {
		c.Storage.Postgres.MaxConnections = 10
	}
	if c.Storage.Postgres.MinConnections == 0 {
		c.Storage.Postgres.MinConnections = 1
	}
	if c.Storage.Postgres.MaxConnLifetime == 0 {
		c.Storage.Postgres.MaxConnLifetime = time.Hour
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "scavenger.db"
	}

	// Gateway defaults
	if c.Gateway.Type == "" {
		c.Gateway.Type = GatewayMemory
	}
	if c.Gateway.Twilio.MaxRetries == 0 {
		c.Gateway.Twilio.MaxRetries = 3
	}
	if c.Gateway.Twilio.InitialInterval == 0 {
		c.Gateway.Twilio.InitialInterval = 500 * time.Millisecond
	}

	// Events defaults
	if c.Events.Type == "" {
		c.Events.Type = EventsNone
	}
	if len(c.Events.Kafka.Brokers) == 0 {
		c.Events.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Events.Kafka.Topic == "" {
		c.Events.Kafka.Topic = "hunt-events"
	}

	// Game defaults
	if c.Game.PenaltyDuration == 0 {
		c.Game.PenaltyDuration = 60 * time.Second
	}
	if c.Game.PhoneRegion == "" {
		c.Game.PhoneRegion = "US"
	}
}

// applyEnv overrides settings from well-known environment variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	strOverrides := []struct {
		env    string
		target *string
	}{
		{"LOG_LEVEL", &c.Log.Level},
		{"LOG_FORMAT", &c.Log.Format},
		{"STORAGE_TYPE", &c.Storage.Type},
		{"REDIS_URL", &c.Storage.Redis.URL},
		{"DATABASE_URL", &c.Storage.Postgres.URL},
		{"SQLITE_PATH", &c.Storage.SQLite.Path},
		{"GATEWAY_TYPE", &c.Gateway.Type},
		{"TWILIO_ACCOUNT_SID", &c.Gateway.Twilio.AccountSID},
		{"TWILIO_AUTH_TOKEN", &c.Gateway.Twilio.AuthToken},
		{"TWILIO_FROM_NUMBER", &c.Gateway.Twilio.FromNumber},
		{"ALERT_PHONE_NUMBER", &c.Gateway.AlertNumber},
		{"EVENTS_TYPE", &c.Events.Type},
	}
	for _, o := range strOverrides {
		if v, ok := lookup(o.env); ok && v != "" {
			*o.target = v
		}
	}

	if v, ok := lookup("KAFKA_BROKERS"); ok && v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Events.Kafka.Brokers = brokers
	}

	return nil
}

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or text", c.Log.Format))
	}

	switch c.Storage.Type {
	case StorageMemory, StorageRedis, StoragePostgres, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.type %q is not supported", c.Storage.Type))
	}

	switch c.Gateway.Type {
	case GatewayMemory:
	case GatewayTwilio:
		t := c.Gateway.Twilio
		if t.AccountSID == "" || t.AuthToken == "" || t.FromNumber == "" {
			errs = append(errs, errors.New("gateway.twilio requires account_sid, auth_token and from_number"))
		}
	default:
		errs = append(errs, fmt.Errorf("gateway.type %q is not supported", c.Gateway.Type))
	}

	switch c.Events.Type {
	case EventsNone, EventsMemory:
	case EventsKafka:
		if len(c.Events.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("events.kafka requires at least one broker"))
		}
	default:
		errs = append(errs, fmt.Errorf("events.type %q is not supported", c.Events.Type))
	}

	if c.Game.PenaltyDuration < 0 {
		errs = append(errs, errors.New("game.penalty_duration must not be negative"))
	}

	return errors.Join(errs...)
}
