// Package migrations embeds the SQL migration files for the Postgres snapshot
// backend so they can be applied through the goose programmatic API in tests
// and server bootstrap. The file backend needs no migrations.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to a goose provider instead of relying on a filesystem path at
// runtime.
//
//go:embed *.sql
var FS embed.FS
