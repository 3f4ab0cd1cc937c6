package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bynderpress/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields keep
// their current value.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	SessionDBPath       *string         `json:"session_db_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays the file at path onto cfg. An empty path is a no-op;
// read or decode errors panic.
func parseJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.SessionDBPath != nil {
		cfg.SessionDBPath = *jc.SessionDBPath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
