// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the goose migrations of the MySQL response cache.
//
//go:embed migrations/*.sql
var Migrations embed.FS
