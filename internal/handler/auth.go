package handler

import (
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// AuthHandler handles the login, logout and whoami commands
type AuthHandler struct {
	auth   *service.AuthService
	render *Renderer
}

// AuthHandlerConfig holds dependencies for the auth handler
type AuthHandlerConfig struct {
	Auth     *service.AuthService
	Renderer *Renderer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{auth: cfg.Auth, render: cfg.Renderer}
}

// Login handles `gather login --email --password`
func (h *AuthHandler) Login(c *cli.Context) error {
	session, err := h.auth.Login(c.Context, model.LoginRequest{
		Email:    c.String("email"),
		Password: c.String("password"),
	})
	if err != nil {
		return fail(err)
	}
	h.render.Printf("Signed in as %s\n", session.AuthorizationValue())
	return nil
}

// Logout handles `gather logout`
func (h *AuthHandler) Logout(c *cli.Context) error {
	if err := h.auth.Logout(); err != nil {
		return fail(err)
	}
	h.render.Printf("Signed out\n")
	return nil
}

// WhoAmI handles `gather whoami`
func (h *AuthHandler) WhoAmI(c *cli.Context) error {
	session, err := h.auth.Current()
	if err != nil {
		return fail(err)
	}
	if !session.Authenticated() {
		return fail(model.NewUnauthenticatedError())
	}
	h.render.Printf("%s\n", session)
	return nil
}
