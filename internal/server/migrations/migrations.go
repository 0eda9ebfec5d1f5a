// Package migrations embeds the goose SQL migrations, including the stored
// procedures that perform atomic multi-table writes.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
