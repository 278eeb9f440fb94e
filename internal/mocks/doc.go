// Package mocks holds the shared mock implementations of the store and
// service interfaces, so test files across the module configure the same
// mocks instead of redeclaring their own.
//
// Every mock follows the same pattern: a struct with one function field per
// interface method, plus a usable default behind it (the store mocks default
// to a small in-memory map). A test overrides exactly the methods it cares
// about:
//
//	movieStore := mocks.NewMockMovieStore()
//	movieStore.ListFn = func(ctx context.Context, f store.MovieFilter) ([]*domain.Movie, error) {
//	    return nil, store.ErrTransactionFailed
//	}
//
// New mocks go in a file named after the interface and keep this
// function-field shape.
package mocks
