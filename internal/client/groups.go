package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/forgo/gather/internal/model"
)

// GroupFilter is the server-side filter accepted by GET /groups
type GroupFilter struct {
	City     string   `schema:"city,omitempty"`
	Name     string   `schema:"name,omitempty"`
	Type     string   `schema:"type,omitempty"`
	Interest []string `schema:"interest,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
	Offset   int      `schema:"offset,omitempty"`
}

var queryEncoder = schema.NewEncoder()

// Values encodes the filter as query parameters
func (f GroupFilter) Values() (url.Values, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(f, values); err != nil {
		return nil, fmt.Errorf("encode group filter: %w", err)
	}
	return values, nil
}

// GroupsClient talks to the groups service
type GroupsClient struct {
	*Client
}

// NewGroupsClient creates a groups service client
func NewGroupsClient(cfg ClientConfig) *GroupsClient {
	return &GroupsClient{Client: NewClient(cfg)}
}

// List returns groups matching the filter
func (c *GroupsClient) List(ctx context.Context, session model.Session, filter GroupFilter) ([]model.Entity, error) {
	query, err := filter.Values()
	if err != nil {
		return nil, err
	}
	return c.list(ctx, session, "/groups", query)
}

// Get returns a single group
func (c *GroupsClient) Get(ctx context.Context, session model.Session, id model.ID) (*model.Entity, error) {
	group := model.Entity{Kind: model.KindGroup}
	if err := c.do(ctx, session, http.MethodGet, "/groups/"+pathID(id), nil, nil, &group); err != nil {
		return nil, err
	}
	if group.ID.IsZero() {
		group.ID = id
	}
	return &group, nil
}

// Members returns a group's member list
func (c *GroupsClient) Members(ctx context.Context, session model.Session, id model.ID) ([]model.Participant, error) {
	members := []model.Participant{}
	if err := c.getList(ctx, session, "/groups/"+pathID(id)+"/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Join requests membership of a group
func (c *GroupsClient) Join(ctx context.Context, session model.Session, id model.ID, req model.JoinRequest) (*model.JoinResponse, error) {
	var resp model.JoinResponse
	if err := c.do(ctx, session, http.MethodPost, "/groups/"+pathID(id)+"/join", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Mine returns the groups the user belongs to
func (c *GroupsClient) Mine(ctx context.Context, session model.Session) ([]model.Entity, error) {
	return c.list(ctx, session, "/users/me/groups", nil)
}

// Administered returns the groups the user administers
func (c *GroupsClient) Administered(ctx context.Context, session model.Session) ([]model.Entity, error) {
	return c.list(ctx, session, "/users/me/admin-groups", nil)
}

// Create creates a group owned by the session user
func (c *GroupsClient) Create(ctx context.Context, session model.Session, group model.Entity) (*model.Entity, error) {
	group.Kind = model.KindGroup
	created := model.Entity{Kind: model.KindGroup}
	if err := c.do(ctx, session, http.MethodPost, "/groups", nil, group, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *GroupsClient) list(ctx context.Context, session model.Session, path string, query url.Values) ([]model.Entity, error) {
	groups := []model.Entity{}
	if err := c.getList(ctx, session, path, query, &groups); err != nil {
		return nil, err
	}
	return model.WithKind(model.KindGroup, groups), nil
}
