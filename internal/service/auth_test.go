package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/model"
)

func newAuth(auth Authenticator, store SessionStore, m *MembershipService) *AuthService {
	return NewAuthService(AuthServiceConfig{Auth: auth, Store: store, Membership: m})
}

// ============================================================================
// Login Tests
// ============================================================================

func TestAuth_Login_StoresSession(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{
		loginFunc: func(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
			assert.Equal(t, "anna@example.com", req.Email)
			return &model.LoginResponse{LegacyUserID: "42"}, nil
		},
	}
	store := &memoryStore{}
	svc := newAuth(auth, store, nil)

	session, err := svc.Login(context.Background(), model.LoginRequest{Email: "anna@example.com", Password: "secret"})
	require.NoError(t, err)

	id, ok := session.UserID()
	require.True(t, ok)
	assert.Equal(t, model.ID("42"), id)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, session, current)
}

func TestAuth_Login_InvalidInputSendsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    model.LoginRequest
		fields []string
	}{
		{"both empty", model.LoginRequest{}, []string{"email", "password"}},
		{"bad email", model.LoginRequest{Email: "anna@example", Password: "x"}, []string{"email"}},
		{"missing password", model.LoginRequest{Email: "anna@example.com"}, []string{"password"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			auth := &mockAuth{}
			_, err := newAuth(auth, &memoryStore{}, nil).Login(context.Background(), tt.req)
			require.ErrorIs(t, err, model.ErrValidation)

			var merr *model.Error
			require.ErrorAs(t, err, &merr)
			var got []string
			for _, f := range merr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
			assert.Equal(t, int32(0), auth.calls.Load())
		})
	}
}

func TestAuth_Login_MissingUserID(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{
		loginFunc: func(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
			return &model.LoginResponse{Message: "ok"}, nil
		},
	}
	_, err := newAuth(auth, &memoryStore{}, nil).Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "p"})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestAuth_Login_RejectedCredentials(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{
		loginFunc: func(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
			return nil, model.NewRejectionError(401, "Invalid credentials")
		},
	}
	store := &memoryStore{}
	_, err := newAuth(auth, store, nil).Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "p"})
	require.ErrorIs(t, err, model.ErrServerRejection)
	assert.Equal(t, "Invalid credentials", model.UserMessage(err, "login failed"))
	assert.False(t, store.session.Authenticated())
}

func TestAuth_Login_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &memoryStore{saveErr: errors.New("disk full")}
	_, err := newAuth(&mockAuth{}, store, nil).Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "p"})
	assert.EqualError(t, err, "disk full")
}

// ============================================================================
// Logout Tests
// ============================================================================

func TestAuth_Logout_ClearsSessionAndJoinState(t *testing.T) {
	t.Parallel()

	m := newMembership(&mockJoiner{})
	e := joinableEvent(model.AccessPublic)
	m.Track(e, model.NewSession("1"))

	store := &memoryStore{session: model.NewSession("1")}
	svc := newAuth(&mockAuth{}, store, m)
	require.NoError(t, svc.Logout())

	current, err := svc.Current()
	require.NoError(t, err)
	assert.False(t, current.Authenticated())
	assert.Equal(t, model.MembershipNotJoined, m.State(e.Ref()))
}
