// Package postgres embeds the PostgreSQL schema migrations.
package postgres

import "embed"

//go:embed migrations/*.sql
var migrations embed.FS

func GetMigrationsFS() embed.FS {
	return migrations
}
