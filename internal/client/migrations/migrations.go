// Package migrations embeds the goose migrations of the bynderctl session
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
