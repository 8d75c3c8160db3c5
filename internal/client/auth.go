package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/forgo/gather/internal/model"
)

// AuthClient talks to the auth service
type AuthClient struct {
	*Client
}

// NewAuthClient creates an auth service client
func NewAuthClient(cfg ClientConfig) *AuthClient {
	return &AuthClient{Client: NewClient(cfg)}
}

// Login exchanges credentials for a user identifier
func (c *AuthClient) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, model.NoSession(), http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Interests lists the selectable interest tags
func (c *AuthClient) Interests(ctx context.Context, session model.Session) ([]model.Interest, error) {
	var raw []json.RawMessage
	if err := c.getList(ctx, session, "/interests", nil, &raw); err != nil {
		return nil, err
	}
	return model.NormalizeInterests(raw), nil
}
