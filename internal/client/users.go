package client

import (
	"context"
	"net/http"

	"github.com/forgo/gather/internal/model"
)

// UsersClient talks to the users service
type UsersClient struct {
	*Client
}

// NewUsersClient creates a users service client
func NewUsersClient(cfg ClientConfig) *UsersClient {
	return &UsersClient{Client: NewClient(cfg)}
}

// Me returns the signed-in user's profile
func (c *UsersClient) Me(ctx context.Context, session model.Session) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.do(ctx, session, http.MethodGet, "/users/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe applies a partial profile update and returns the stored profile
func (c *UsersClient) UpdateMe(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.do(ctx, session, http.MethodPatch, "/users/me", nil, patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
