package postgres

import "embed"

// MigrationsFS holds the embedded goose migration files. The server
// binary applies them via the -migrate flag so deployments never depend
// on migration files being present on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
