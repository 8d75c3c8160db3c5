// Package testdb provides an isolated session store for tests.
//
// Each call opens a fresh bbolt file in the test's temporary directory,
// so tests exercise the real store without sharing state.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    st := testdb.New(t)
//	    _ = st.SaveSession(model.NewSession("1"))
//	}
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/store"
)

// New opens an empty store that is closed when the test ends
func New(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(Path(t))
	if err != nil {
		t.Fatalf("testdb: failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// NewSignedIn opens a store holding a session for userID
func NewSignedIn(t *testing.T, userID model.ID) *store.Store {
	t.Helper()

	st := New(t)
	if err := st.SaveSession(model.NewSession(userID)); err != nil {
		t.Fatalf("testdb: failed to save session: %v", err)
	}
	return st
}

// Path returns a fresh store location inside the test's temp dir
func Path(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gather", "session.db")
}
