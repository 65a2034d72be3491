package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, GatewayMemory, cfg.Gateway.Type)
	assert.Equal(t, EventsNone, cfg.Events.Type)
	assert.Equal(t, 60*time.Second, cfg.Game.PenaltyDuration)
	assert.True(t, cfg.Game.Injuries())
	assert.True(t, cfg.Game.Timing())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  type: redis
  redis:
    url: redis://cache:6379/1
    player_ttl: 48h
gateway:
  type: twilio
  alert_number: "+15550009999"
  twilio:
    account_sid: AC123
    auth_token: secret
    from_number: "+15550001111"
events:
  type: kafka
  kafka:
    brokers: [kafka-1:9092, kafka-2:9092]
game:
  injury_enabled: false
  penalty_duration: 2m
  catalog_path: clues.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379/1", cfg.Storage.Redis.URL)
	assert.Equal(t, 48*time.Hour, cfg.Storage.Redis.PlayerTTL)
	assert.Equal(t, "AC123", cfg.Gateway.Twilio.AccountSID)
	assert.Equal(t, "+15550009999", cfg.Gateway.AlertNumber)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "hunt-events", cfg.Events.Kafka.Topic)
	assert.False(t, cfg.Game.Injuries())
	assert.True(t, cfg.Game.Timing())
	assert.Equal(t, 2*time.Minute, cfg.Game.PenaltyDuration)
	assert.Equal(t, "clues.yaml", cfg.Game.CatalogPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("HUNT_TEST_TOKEN", "from-env")
	path := writeConfig(t, `
gateway:
  twilio:
    auth_token: ${HUNT_TEST_TOKEN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Gateway.Twilio.AuthToken)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  type: memory
`)
	t.Setenv("PORT", "7070")
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://db/hunt")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage.Type)
	assert.Equal(t, "postgres://db/hunt", cfg.Storage.Postgres.URL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage.Type = "mongo" }},
		{"twilio without credentials", func(c *Config) { c.Gateway.Type = GatewayTwilio }},
		{"unknown gateway", func(c *Config) { c.Gateway.Type = "carrier-pigeon" }},
		{"kafka without brokers", func(c *Config) {
			c.Events.Type = EventsKafka
			c.Events.Kafka.Brokers = nil
		}},
		{"unknown events", func(c *Config) { c.Events.Type = "nats" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative penalty", func(c *Config) { c.Game.PenaltyDuration = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
