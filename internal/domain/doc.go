// Package domain holds the catalog entities — Movie, Genre, Actor — and the
// User account type, along with their constructors, validation rules and
// the sentinel errors validation produces. Nothing here knows about HTTP or
// the database.
package domain
