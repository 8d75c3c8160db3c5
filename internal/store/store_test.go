package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/model"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestStore_EmptyHasNoSession(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	defer s.Close()

	session, err := s.Session()
	assert.True(t, errors.Is(err, ErrNoSession))
	assert.False(t, session.Authenticated())
}

func TestStore_SaveAndReopen(t *testing.T) {
	t.Parallel()

	s, path := openTemp(t)
	require.NoError(t, s.SaveSession(model.NewSession("42")))
	require.NoError(t, s.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	session, err := s.Session()
	require.NoError(t, err)
	id, ok := session.UserID()
	assert.True(t, ok)
	assert.Equal(t, model.ID("42"), id)

	at, err := s.SignedInAt()
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestStore_SaveNoSessionClears(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	defer s.Close()

	require.NoError(t, s.SaveSession(model.NewSession("7")))
	require.NoError(t, s.SaveSession(model.NoSession()))

	_, err := s.Session()
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestStore_UseAfterClose(t *testing.T) {
	t.Parallel()

	s, _ := openTemp(t)
	require.NoError(t, s.Close())

	_, err := s.Session()
	assert.True(t, errors.Is(err, ErrClosed))
	assert.True(t, errors.Is(s.Close(), ErrClosed))
}
