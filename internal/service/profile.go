package service

import (
	"context"

	"github.com/forgo/gather/internal/model"
)

// ProfileBackend reads and updates the signed-in user's profile
type ProfileBackend interface {
	Me(ctx context.Context, session model.Session) (*model.UserProfile, error)
	UpdateMe(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error)
}

// InterestSource lists the selectable interest tags
type InterestSource interface {
	Interests(ctx context.Context, session model.Session) ([]model.Interest, error)
}

// ProfileService handles the profile page
type ProfileService struct {
	users     ProfileBackend
	interests InterestSource
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	Users     ProfileBackend
	Interests InterestSource
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	return &ProfileService{users: cfg.Users, interests: cfg.Interests}
}

// Profile loads the signed-in user's profile
func (s *ProfileService) Profile(ctx context.Context, session model.Session) (*model.UserProfile, error) {
	if !session.Authenticated() {
		return nil, model.NewUnauthenticatedError()
	}
	return s.users.Me(ctx, session)
}

// Update validates and sends a partial profile update
func (s *ProfileService) Update(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error) {
	if !session.Authenticated() {
		return nil, model.NewUnauthenticatedError()
	}
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if errs := patch.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return s.users.UpdateMe(ctx, session, patch)
}

// Interests lists the interest tags a profile can pick from
func (s *ProfileService) Interests(ctx context.Context, session model.Session) ([]model.Interest, error) {
	return s.interests.Interests(ctx, session)
}
