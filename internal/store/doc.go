// Package store declares the persistence interfaces for users, movies,
// genres and actors, the sentinel errors their implementations surface,
// and the transaction helper that lets a movie row and its association
// rows commit as one unit. Callers depend on these interfaces, never on a
// concrete database package.
package store
