package handler

import (
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// CreateHandler handles `gather create event` and `gather create group`
type CreateHandler struct {
	create   *service.CreateService
	address  *AddressHandler
	sessions Sessions
	render   *Renderer
}

// CreateHandlerConfig holds dependencies for the create handler
type CreateHandlerConfig struct {
	Create   *service.CreateService
	Address  *AddressHandler
	Sessions Sessions
	Renderer *Renderer
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(cfg CreateHandlerConfig) *CreateHandler {
	return &CreateHandler{
		create:   cfg.Create,
		address:  cfg.Address,
		sessions: cfg.Sessions,
		render:   cfg.Renderer,
	}
}

// Create returns the action creating an entity of kind from flags
func (h *CreateHandler) Create(kind model.EntityKind) cli.ActionFunc {
	return func(c *cli.Context) error {
		session, err := h.sessions.Current()
		if err != nil {
			return fail(err)
		}
		if !session.Authenticated() {
			return fail(model.NewUnauthenticatedError())
		}

		place, err := h.address.Resolve(c)
		if err != nil {
			return err
		}

		draft := model.Draft{
			Kind:            kind,
			Name:            c.String("name"),
			Description:     c.String("description"),
			ImageURL:        c.String("image"),
			City:            c.String("city"),
			Place:           place,
			Start:           c.String("start"),
			End:             c.String("end"),
			MaxParticipants: c.Int("max"),
			Access:          model.AccessPolicy(c.String("access")),
			AgeRestriction:  c.Int("age"),
			Price:           c.Float64("price"),
			Requirements:    c.String("requirements"),
			GroupType:       c.String("type"),
		}
		for _, id := range c.StringSlice("interest") {
			draft.Interests = append(draft.Interests, model.ID(id))
		}

		created, err := h.create.Create(c.Context, session, draft)
		if err != nil {
			return fail(err)
		}
		h.render.Printf("Created %s %s (%s)\n", kind, created.Name, created.ID)
		return nil
	}
}
