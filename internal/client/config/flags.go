package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/flagx"
)

var clientFlags = []string{"-a", "-db", "-i"}

// parseFlags overlays -a, -db and -i from args onto cfg. Other flags are
// filtered out first so -c does not trip the flag set.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, clientFlags)

	fs := flag.NewFlagSet("bynderctl", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the server")
	fs.StringVar(&cfg.SessionDBPath, "db", cfg.SessionDBPath, "session database path")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
