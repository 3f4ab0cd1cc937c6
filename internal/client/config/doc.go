// Package config loads runtime configuration for bynderctl.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c/-config or BYNDERCTL_CONFIG.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the bynderpress gRPC endpoint
//	-db string  path of the local session database
//	-i int      online status check interval (seconds)
//
// JSON durations accept "3s" strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_db_path": "bynderctl.db",
//	  "online_check_interval": "3s"
//	}
package config
