// Package migrations embeds the SQL schema for the agent's local queue
// database, applied with goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
