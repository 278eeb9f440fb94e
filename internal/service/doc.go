// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The central piece is the CatalogService, which owns the multi-table writes
// of the catalog: creating or replacing a movie together with its genre and
// actor association sets inside a single transaction, so a movie is never
// persisted half-linked.
//
// Services receive their dependencies through constructor injection: a
// repository interface (satisfied by an adapter over the store layer), and a
// logger. They never depend on specific infrastructure implementations.
// Repository errors are wrapped in service-level error types that carry the
// failed operation and a safe message for the API layer, with the original
// error preserved for errors.Is/errors.As checks.
package service
