package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/model"
)

func newProfile(users *mockUsers) *ProfileService {
	return NewProfileService(ProfileServiceConfig{Users: users, Interests: users})
}

// ============================================================================
// Profile Tests
// ============================================================================

func TestProfile_RequiresSession(t *testing.T) {
	t.Parallel()

	users := &mockUsers{}
	_, err := newProfile(users).Profile(context.Background(), model.NoSession())
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	name := "anna"
	_, err = newProfile(users).Update(context.Background(), model.NoSession(), model.ProfilePatch{Username: &name})
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
	assert.Equal(t, int32(0), users.calls.Load())
}

func TestProfile_UpdateSendsValidPatch(t *testing.T) {
	t.Parallel()

	city := "Казань"
	users := &mockUsers{
		updateFunc: func(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error) {
			return &model.UserProfile{UserID: "1", City: *patch.City}, nil
		},
	}
	got, err := newProfile(users).Update(context.Background(), model.NewSession("1"), model.ProfilePatch{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Казань", got.City)
}

func TestProfile_UpdateRejectsInvalidPatch(t *testing.T) {
	t.Parallel()

	users := &mockUsers{}
	age := -1
	_, err := newProfile(users).Update(context.Background(), model.NewSession("1"), model.ProfilePatch{
		Age:         &age,
		Preferences: &model.Preferences{Language: "de"},
	})
	require.ErrorIs(t, err, model.ErrValidation)

	var merr *model.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Fields, 2)
	assert.Equal(t, "age", merr.Fields[0].Field)
	assert.Equal(t, "preferences.language", merr.Fields[1].Field)
	assert.Equal(t, int32(0), users.calls.Load())
}

func TestProfile_UpdateEmptyPatch(t *testing.T) {
	t.Parallel()

	_, err := newProfile(&mockUsers{}).Update(context.Background(), model.NewSession("1"), model.ProfilePatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestProfile_Interests(t *testing.T) {
	t.Parallel()

	users := &mockUsers{
		interestFunc: func(ctx context.Context, session model.Session) ([]model.Interest, error) {
			return []model.Interest{{ID: "1", Name: "Музыка"}}, nil
		},
	}
	got, err := newProfile(users).Interests(context.Background(), model.NoSession())
	require.NoError(t, err)
	assert.Equal(t, []model.Interest{{ID: "1", Name: "Музыка"}}, got)
}
