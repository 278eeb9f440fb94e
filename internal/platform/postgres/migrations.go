package postgres

import "embed"

// MigrationsFS embeds the goose SQL migrations so the server binary and the
// test harness can apply them without locating the source tree on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migrations directory inside MigrationsFS.
const MigrationsDir = "migrations"
