// Package postgres implements the internal/store interfaces on PostgreSQL
// via database/sql and the pgx driver. It owns the SQL for the catalog
// tables and their association tables, translates PostgreSQL error codes
// into store sentinels, and embeds the goose migrations that define the
// schema.
package postgres
