// Package api contains the HTTP handlers for the catalog and auth
// endpoints, the request and response DTOs with their projections, and the
// mapping from wrapped domain, store and service errors to HTTP status
// codes with client-safe messages.
package api
