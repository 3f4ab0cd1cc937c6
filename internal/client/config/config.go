package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/flagx"
)

// ConfigEnvVar names the JSON config file when no -c flag is given.
const ConfigEnvVar = "BYNDERCTL_CONFIG"

// Config holds runtime settings for bynderctl.
type Config struct {
	ServerEndpointAddr  string
	SessionDBPath       string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with defaults suitable for a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionDBPath = "bynderctl.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config from defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, flagx.ConfigPath(os.Args[1:], ConfigEnvVar))
	parseFlags(cfg, os.Args[1:])
	return cfg
}
