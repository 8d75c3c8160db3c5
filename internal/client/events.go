package client

import (
	"context"
	"net/http"

	"github.com/forgo/gather/internal/model"
)

// EventsClient talks to the events service
type EventsClient struct {
	*Client
}

// NewEventsClient creates an events service client
func NewEventsClient(cfg ClientConfig) *EventsClient {
	return &EventsClient{Client: NewClient(cfg)}
}

// List returns all events
func (c *EventsClient) List(ctx context.Context, session model.Session) ([]model.Entity, error) {
	events := []model.Entity{}
	if err := c.getList(ctx, session, "/events", nil, &events); err != nil {
		return nil, err
	}
	return model.WithKind(model.KindEvent, events), nil
}

// Get returns a single event
func (c *EventsClient) Get(ctx context.Context, session model.Session, id model.ID) (*model.Entity, error) {
	event := model.Entity{Kind: model.KindEvent}
	if err := c.do(ctx, session, http.MethodGet, "/events/"+pathID(id), nil, nil, &event); err != nil {
		return nil, err
	}
	if event.ID.IsZero() {
		event.ID = id
	}
	return &event, nil
}

// Participants returns an event's participant list
func (c *EventsClient) Participants(ctx context.Context, session model.Session, id model.ID) ([]model.Participant, error) {
	participants := []model.Participant{}
	if err := c.getList(ctx, session, "/events/"+pathID(id)+"/participants", nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// Join registers the session user for an event
func (c *EventsClient) Join(ctx context.Context, session model.Session, id model.ID, req model.JoinRequest) (*model.JoinResponse, error) {
	var resp model.JoinResponse
	if err := c.do(ctx, session, http.MethodPost, "/events/"+pathID(id)+"/participants", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create creates an event owned by the session user
func (c *EventsClient) Create(ctx context.Context, session model.Session, event model.Entity) (*model.Entity, error) {
	event.Kind = model.KindEvent
	created := model.Entity{Kind: model.KindEvent}
	if err := c.do(ctx, session, http.MethodPost, "/events", nil, event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
