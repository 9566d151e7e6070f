package todoapp

import "embed"

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded SQL migrations.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
