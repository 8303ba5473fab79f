// Package migrations embeds the cart database schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
