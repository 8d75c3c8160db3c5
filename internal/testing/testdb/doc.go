// Package testdb provides session store utilities for tests.
//
// # Usage
//
// Open an empty store, or one with a signed-in user:
//
//	st := testdb.New(t)
//	st := testdb.NewSignedIn(t, "42")
//
// # Cleanup
//
// Stores are closed automatically via t.Cleanup; files live in t.TempDir().
package testdb
