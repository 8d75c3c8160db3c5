// Package store keeps the locally stored current-user identifier.
//
// The identifier lives in a small bbolt file so that consecutive CLI
// invocations share one sign-in. Nothing else is persisted.
//
// # Error Handling
//
//   - ErrNoSession: no user is stored
//   - ErrClosed: the store was used after Close
//
//	s, err := store.Open(path)
//	if err != nil { ... }
//	defer s.Close()
//	session, err := s.Session()
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/forgo/gather/internal/model"
)

// Standard errors for store operations.
var (
	// ErrNoSession indicates no current user is stored.
	ErrNoSession = errors.New("no stored session")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store closed")
)

const (
	bucketSession = "session"
	keyUserID     = "user_id"
	keySignedInAt = "signed_in_at"
)

// Store is a bbolt-backed session store
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store file at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSession))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the file lock
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Session returns the stored session, or NoSession with ErrNoSession
func (s *Store) Session() (model.Session, error) {
	if s.db == nil {
		return model.NoSession(), ErrClosed
	}
	var id model.ID
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSession)).Get([]byte(keyUserID))
		if len(v) == 0 {
			return ErrNoSession
		}
		id = model.ID(v)
		return nil
	})
	if err != nil {
		return model.NoSession(), err
	}
	return model.NewSession(id), nil
}

// SignedInAt returns when the stored session was saved
func (s *Store) SignedInAt() (time.Time, error) {
	if s.db == nil {
		return time.Time{}, ErrClosed
	}
	var at time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSession)).Get([]byte(keySignedInAt))
		if v == nil {
			return ErrNoSession
		}
		return at.UnmarshalText(v)
	})
	return at, err
}

// SaveSession stores the session's user identifier. Saving NoSession clears it.
func (s *Store) SaveSession(session model.Session) error {
	id, ok := session.UserID()
	if !ok {
		return s.ClearSession()
	}
	if s.db == nil {
		return ErrClosed
	}
	stamp, err := time.Now().UTC().MarshalText()
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		if err := b.Put([]byte(keyUserID), []byte(id)); err != nil {
			return err
		}
		return b.Put([]byte(keySignedInAt), stamp)
	})
}

// ClearSession deletes the stored user identifier
func (s *Store) ClearSession() error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		if err := b.Delete([]byte(keyUserID)); err != nil {
			return err
		}
		return b.Delete([]byte(keySignedInAt))
	})
}
