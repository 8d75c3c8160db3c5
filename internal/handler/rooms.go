package handler

import (
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// RoomsHandler handles the rooms command
type RoomsHandler struct {
	rooms      *service.RoomsService
	membership *service.MembershipService
	sessions   Sessions
	render     *Renderer
}

// RoomsHandlerConfig holds dependencies for the rooms handler
type RoomsHandlerConfig struct {
	Rooms      *service.RoomsService
	Membership *service.MembershipService
	Sessions   Sessions
	Renderer   *Renderer
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(cfg RoomsHandlerConfig) *RoomsHandler {
	return &RoomsHandler{
		rooms:      cfg.Rooms,
		membership: cfg.Membership,
		sessions:   cfg.Sessions,
		render:     cfg.Renderer,
	}
}

// Rooms handles `gather rooms`
func (h *RoomsHandler) Rooms(c *cli.Context) error {
	session, err := h.sessions.Current()
	if err != nil {
		return fail(err)
	}
	rooms, err := h.rooms.Rooms(c.Context, session)
	if err != nil {
		return fail(err)
	}

	for _, e := range append(append([]model.Entity{}, rooms.Administered...), rooms.Member...) {
		h.membership.Track(e, session)
	}

	h.render.Printf("Groups I run\n")
	if rooms.AdministeredDegraded {
		h.render.Notice("could not load your groups, showing offline data")
	}
	if err := h.render.List(rooms.Administered, h.membership.Control); err != nil {
		return err
	}

	h.render.Printf("\nGroups I belong to\n")
	if rooms.MemberDegraded {
		h.render.Notice("could not load your memberships, showing offline data")
	}
	return h.render.List(rooms.Member, h.membership.Control)
}
