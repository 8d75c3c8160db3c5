package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/forgo/gather/internal/config"
	"github.com/forgo/gather/internal/model"
)

// Backends bundles the service clients and routes entity operations to the
// events or groups service by kind.
type Backends struct {
	Auth   *AuthClient
	Users  *UsersClient
	Groups *GroupsClient
	Events *EventsClient
	Places *PlacesClient
}

// NewBackends builds every client from configuration, sharing one HTTP client
func NewBackends(cfg *config.Config, log *slog.Logger) *Backends {
	hc := NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, log)
	return NewBackendsWithClient(cfg, hc)
}

// NewBackendsWithClient is NewBackends with a caller-supplied HTTP client
func NewBackendsWithClient(cfg *config.Config, hc *http.Client) *Backends {
	service := func(base string) ClientConfig {
		return ClientConfig{BaseURL: base, APIPrefix: cfg.Services.APIPrefix, HTTPClient: hc}
	}
	return &Backends{
		Auth:   NewAuthClient(service(cfg.Services.AuthURL)),
		Users:  NewUsersClient(service(cfg.Services.UsersURL)),
		Groups: NewGroupsClient(service(cfg.Services.GroupsURL)),
		Events: NewEventsClient(service(cfg.Services.EventsURL)),
		Places: NewPlacesClient(PlacesConfig{
			BaseURL:    cfg.Places.URL,
			Language:   cfg.Places.Language,
			Limit:      cfg.Places.Limit,
			Rate:       cfg.Places.Rate,
			HTTPClient: hc,
		}),
	}
}

// List returns every entity of the given kind
func (b *Backends) List(ctx context.Context, session model.Session, kind model.EntityKind) ([]model.Entity, error) {
	switch kind {
	case model.KindEvent:
		return b.Events.List(ctx, session)
	case model.KindGroup:
		return b.Groups.List(ctx, session, GroupFilter{})
	}
	return nil, unknownKind(kind)
}

// Get returns one entity
func (b *Backends) Get(ctx context.Context, session model.Session, ref model.Ref) (*model.Entity, error) {
	switch ref.Kind {
	case model.KindEvent:
		return b.Events.Get(ctx, session, ref.ID)
	case model.KindGroup:
		return b.Groups.Get(ctx, session, ref.ID)
	}
	return nil, unknownKind(ref.Kind)
}

// Participants returns an entity's participants (event) or members (group)
func (b *Backends) Participants(ctx context.Context, session model.Session, ref model.Ref) ([]model.Participant, error) {
	switch ref.Kind {
	case model.KindEvent:
		return b.Events.Participants(ctx, session, ref.ID)
	case model.KindGroup:
		return b.Groups.Members(ctx, session, ref.ID)
	}
	return nil, unknownKind(ref.Kind)
}

// Join sends a membership-creation request
func (b *Backends) Join(ctx context.Context, session model.Session, ref model.Ref, req model.JoinRequest) (*model.JoinResponse, error) {
	switch ref.Kind {
	case model.KindEvent:
		return b.Events.Join(ctx, session, ref.ID, req)
	case model.KindGroup:
		return b.Groups.Join(ctx, session, ref.ID, req)
	}
	return nil, unknownKind(ref.Kind)
}

// Create creates an entity of e.Kind
func (b *Backends) Create(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error) {
	switch e.Kind {
	case model.KindEvent:
		return b.Events.Create(ctx, session, e)
	case model.KindGroup:
		return b.Groups.Create(ctx, session, e)
	}
	return nil, unknownKind(e.Kind)
}

func unknownKind(kind model.EntityKind) error {
	return fmt.Errorf("unknown entity kind %q", kind)
}
