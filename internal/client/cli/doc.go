// Package cli is the interactive bynderctl client.
//
// App wires the config, the session database, the admin API client and a
// REPL. On start it restores the saved session for the configured server,
// starts a background connectivity watcher and reads commands until exit:
//
//	login | logout
//	settings                   show the Bynder settings
//	set <field> [value]        update one field (domain, token, search, derivative)
//	derivatives                fetch the portal's derivatives
//	sync                       run a usage sync now
//	status                     show the scheduler state and last run
//	ping | help | exit
package cli
