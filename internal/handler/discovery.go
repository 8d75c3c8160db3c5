package handler

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// Sessions resolves the session of the person running the command
type Sessions interface {
	Current() (model.Session, error)
}

// DiscoveryHandler handles the events, groups, show and join commands
type DiscoveryHandler struct {
	discovery *service.DiscoveryService
	sessions  Sessions
	render    *Renderer
	width     int
}

// DiscoveryHandlerConfig holds dependencies for the discovery handler
type DiscoveryHandlerConfig struct {
	Discovery *service.DiscoveryService
	Sessions  Sessions
	Renderer  *Renderer
	// Width is the viewport width used when --width is not given
	Width int
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(cfg DiscoveryHandlerConfig) *DiscoveryHandler {
	width := cfg.Width
	if width <= 0 {
		width = 1280
	}
	return &DiscoveryHandler{
		discovery: cfg.Discovery,
		sessions:  cfg.Sessions,
		render:    cfg.Renderer,
		width:     width,
	}
}

func plural(kind model.EntityKind) string {
	return string(kind) + "s"
}

// List handles `gather events` and `gather groups`
func (h *DiscoveryHandler) List(kind model.EntityKind) cli.ActionFunc {
	return func(c *cli.Context) error {
		session, err := h.sessions.Current()
		if err != nil {
			return fail(err)
		}
		criteria, err := service.ParseCriteria(c.String("city"), c.String("name"), c.String("date"), c.String("age"))
		if err != nil {
			return fail(err)
		}

		width := h.width
		if c.IsSet("width") {
			width = c.Int("width")
		}
		page := h.discovery.Open(c.Context, session, kind, width)
		if degraded, _ := page.Degraded(); degraded {
			h.render.Notice(fmt.Sprintf("could not load %s, showing offline data", plural(kind)))
		}

		shown := page.SetCriteria(criteria)
		if v := c.String("view"); v != "" {
			if err := page.View().SwitchTo(service.ViewMode(v)); err != nil {
				return fail(err)
			}
		}

		var detail service.Detail
		if id := c.String("select"); id != "" {
			detail, err = page.Select(c.Context, model.ID(id))
			if err != nil {
				return fail(err)
			}
		}

		layout := page.View().Layout()
		h.render.Printf("%d of %d %s | %s\n\n", len(shown), len(page.All()), plural(kind), layout.State)
		if layout.MapVisible {
			if err := h.render.Map(shown); err != nil {
				return err
			}
		}
		if layout.ListVisible {
			if err := h.render.List(shown, h.discovery.Membership().Control); err != nil {
				return err
			}
		}
		if layout.DetailVisible {
			if layout.Split {
				h.render.Printf("\n")
			}
			return h.render.Detail(detail)
		}
		return nil
	}
}

func refArg(c *cli.Context, kind model.EntityKind) (model.Ref, error) {
	id := c.Args().First()
	if id == "" {
		return model.Ref{}, &Failure{Code: ExitInvalidInput, Message: fmt.Sprintf("missing %s id", kind)}
	}
	return model.Ref{Kind: kind, ID: model.ID(id)}, nil
}

// Show handles `gather event show ID` and `gather group show ID`
func (h *DiscoveryHandler) Show(kind model.EntityKind) cli.ActionFunc {
	return func(c *cli.Context) error {
		ref, err := refArg(c, kind)
		if err != nil {
			return err
		}
		session, err := h.sessions.Current()
		if err != nil {
			return fail(err)
		}
		d, err := h.discovery.Detail(c.Context, session, ref)
		if err != nil {
			return fail(err)
		}
		if d.Degraded {
			h.render.Notice(fmt.Sprintf("could not load %s %s, showing offline data", kind, ref.ID))
		}
		return h.render.Detail(d)
	}
}

// Join handles `gather event join ID` and `gather group join ID`
func (h *DiscoveryHandler) Join(kind model.EntityKind) cli.ActionFunc {
	return func(c *cli.Context) error {
		ref, err := refArg(c, kind)
		if err != nil {
			return err
		}
		session, err := h.sessions.Current()
		if err != nil {
			return fail(err)
		}
		if !session.Authenticated() {
			return fail(model.NewUnauthenticatedError())
		}

		if _, err := h.discovery.Detail(c.Context, session, ref); err != nil {
			return fail(err)
		}
		membership := h.discovery.Membership()
		res, err := membership.Join(c.Context, session, ref)
		if err != nil {
			h.render.Printf("[%s] %s\n", joinButton(membership.Control(ref)), membership.FailureMessage(ref))
			return fail(err)
		}

		switch {
		case res.Skipped:
			h.render.Printf("[%s] nothing to do\n", joinButton(membership.Control(ref)))
		case res.Entity.Access.IsPrivate():
			h.render.Printf("Application sent to %s\n", res.Entity.Name)
		default:
			h.render.Printf("Joined %s (%s people)\n", res.Entity.Name, capacity(&res.Entity))
		}
		return nil
	}
}
