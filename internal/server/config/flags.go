package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/flagx"
)

var serverFlags = []string{
	"-a", "-g", "-d", "-s", "-k", "-t", "-r", "-i", "-l", "-w", "-u", "-p",
	"-b", "-e", "-region",
}

// parseFlags overlays command-line flags onto config.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-k string   permanent token sealing secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-i int      usage sync interval, minutes
//	-l string   Compact View language
//	-w string   site URL used in post GUIDs
//	-u string   administrator to seed at startup
//	-p string   password of the seeded administrator
//	-b string   S3 bucket for usage report archives
//	-e string   S3 base endpoint
//	-region     S3 region
//
// Only the flags above are taken from args (see flagx.FilterArgs), so the
// config file flag does not collide. Durations are whole minutes and only
// replace the current value when the flag is given, so sub-minute values
// from the JSON file survive.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	fs.StringVar(&config.SealingSecret, "k", config.SealingSecret, "permanent token sealing secret")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	syncInterval := fs.Int("i", int(config.SyncInterval.Minutes()), "usage sync interval (in minutes)")

	fs.StringVar(&config.Language, "l", config.Language, "Compact View language")
	fs.StringVar(&config.SiteURL, "w", config.SiteURL, "site URL")
	fs.StringVar(&config.AdminUser, "u", config.AdminUser, "administrator to seed")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "administrator password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 archive bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
		case "i":
			config.SyncInterval = time.Duration(*syncInterval) * time.Minute
		}
	})
}
