package handler

import (
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// ProfileHandler handles the profile commands
type ProfileHandler struct {
	profiles *service.ProfileService
	sessions Sessions
	render   *Renderer
}

// ProfileHandlerConfig holds dependencies for the profile handler
type ProfileHandlerConfig struct {
	Profiles *service.ProfileService
	Sessions Sessions
	Renderer *Renderer
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(cfg ProfileHandlerConfig) *ProfileHandler {
	return &ProfileHandler{profiles: cfg.Profiles, sessions: cfg.Sessions, render: cfg.Renderer}
}

// Show handles `gather profile show`
func (h *ProfileHandler) Show(c *cli.Context) error {
	session, err := h.sessions.Current()
	if err != nil {
		return fail(err)
	}
	p, err := h.profiles.Profile(c.Context, session)
	if err != nil {
		return fail(err)
	}
	return h.render.Profile(p)
}

// Edit handles `gather profile edit`. Only flags that were given are sent.
func (h *ProfileHandler) Edit(c *cli.Context) error {
	session, err := h.sessions.Current()
	if err != nil {
		return fail(err)
	}

	var patch model.ProfilePatch
	if c.IsSet("username") {
		v := c.String("username")
		patch.Username = &v
	}
	if c.IsSet("age") {
		v := c.Int("age")
		patch.Age = &v
	}
	if c.IsSet("city") {
		v := c.String("city")
		patch.City = &v
	}
	if c.IsSet("bio") {
		v := c.String("bio")
		patch.Bio = &v
	}
	if c.IsSet("interest") {
		for _, id := range c.StringSlice("interest") {
			patch.InterestIDs = append(patch.InterestIDs, model.ID(id))
		}
	}
	if c.IsSet("language") {
		patch.Preferences = &model.Preferences{Language: c.String("language")}
	}

	p, err := h.profiles.Update(c.Context, session, patch)
	if err != nil {
		return fail(err)
	}
	h.render.Printf("Profile updated\n\n")
	return h.render.Profile(p)
}

// Interests handles `gather profile interests`
func (h *ProfileHandler) Interests(c *cli.Context) error {
	session, err := h.sessions.Current()
	if err != nil {
		return fail(err)
	}
	interests, err := h.profiles.Interests(c.Context, session)
	if err != nil {
		return fail(err)
	}
	rows := make([][]string, 0, len(interests))
	for _, it := range interests {
		rows = append(rows, []string{it.ID.String(), it.Name})
	}
	return h.render.Table([]string{"ID", "INTEREST"}, rows)
}
