package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "bynderctl.db", c.SessionDBPath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"bynderctl"}
	t.Setenv(ConfigEnvVar, "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *cfg)
}

func TestLoadConfig_EnvFileThenFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "json:50051",
		"session_db_path":      "/tmp/json.db",
	})
	t.Setenv(ConfigEnvVar, path)
	os.Args = []string{"bynderctl", "-db", "/tmp/flag.db"}

	cfg := LoadConfig()

	assert.Equal(t, "json:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, "/tmp/flag.db", cfg.SessionDBPath)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
