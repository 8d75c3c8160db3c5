package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/store"
)

// Authenticator exchanges credentials for a user identifier
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// SessionStore persists the current-user identifier between runs
type SessionStore interface {
	Session() (model.Session, error)
	SaveSession(session model.Session) error
	ClearSession() error
}

// AuthService handles sign-in and sign-out
type AuthService struct {
	auth       Authenticator
	store      SessionStore
	membership *MembershipService
	log        *slog.Logger
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	Auth       Authenticator
	Store      SessionStore
	Membership *MembershipService
	Logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		auth:       cfg.Auth,
		store:      cfg.Store,
		membership: cfg.Membership,
		log:        log,
	}
}

// Login validates credentials locally, signs in and stores the session.
// Invalid input fails with a validation error before any request.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return model.NoSession(), model.NewValidationError(errs)
	}

	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return model.NoSession(), err
	}
	id := resp.Identifier()
	if id.IsZero() {
		return model.NoSession(), ErrMissingUserID
	}

	session := model.NewSession(id)
	if err := s.store.SaveSession(session); err != nil {
		return model.NoSession(), err
	}
	if s.membership != nil {
		s.membership.Reset()
	}
	s.log.Info("signed in", slog.String("user_id", id.String()))
	return session, nil
}

// Logout forgets the stored session and all join state
func (s *AuthService) Logout() error {
	if err := s.store.ClearSession(); err != nil {
		return err
	}
	if s.membership != nil {
		s.membership.Reset()
	}
	return nil
}

// Current returns the stored session, NoSession when nobody is signed in
func (s *AuthService) Current() (model.Session, error) {
	session, err := s.store.Session()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return model.NoSession(), nil
		}
		return model.NoSession(), err
	}
	return session, nil
}
