package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scavengerhunt/internal/config"
	"github.com/mcoot/scavengerhunt/internal/testutil"
)

func TestServerAddr(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9099

	s := NewServer(nil, cfg, testutil.NopLogger())
	assert.Equal(t, "127.0.0.1:9099", s.Addr())
}

func TestServerShutdownBeforeStart(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.ShutdownTimeout = time.Second

	s := NewServer(nil, cfg, testutil.NopLogger())
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestServerConfigFromFileConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9100
	cfg.Server.WriteTimeout = 3 * time.Second

	sc := ServerConfigFrom(cfg.Server)
	assert.Equal(t, 9100, sc.Port)
	assert.Equal(t, 3*time.Second, sc.WriteTimeout)
	assert.Equal(t, 30*time.Second, sc.ShutdownTimeout)
}
