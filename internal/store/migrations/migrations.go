// Package migrations embeds the destination store schema migrations,
// applied with goose on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
