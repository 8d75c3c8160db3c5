package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgo/gather/internal/model"
)

// EntityCreator creates events and groups
type EntityCreator interface {
	Create(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error)
}

// CreateService handles the create-event and create-group forms
type CreateService struct {
	creator EntityCreator
	loc     *time.Location
	log     *slog.Logger
}

// CreateServiceConfig holds configuration for the create service
type CreateServiceConfig struct {
	Creator  EntityCreator
	Location *time.Location
	Logger   *slog.Logger
}

// NewCreateService creates a new create service
func NewCreateService(cfg CreateServiceConfig) *CreateService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &CreateService{creator: cfg.Creator, loc: loc, log: log}
}

// Create validates a draft and submits it. The created record is returned,
// or the submitted one when the service echoes nothing back.
func (s *CreateService) Create(ctx context.Context, session model.Session, d model.Draft) (*model.Entity, error) {
	if !session.Authenticated() {
		return nil, model.NewUnauthenticatedError()
	}
	e, err := d.Entity(s.loc)
	if err != nil {
		return nil, err
	}
	if id, ok := session.UserID(); ok {
		e.CreatorID = id
	}

	created, err := s.creator.Create(ctx, session, e)
	if err != nil {
		return nil, err
	}
	if created == nil || (created.ID.IsZero() && created.Name == "") {
		created = &e
	}
	created.Kind = d.Kind
	s.log.Info("entity created",
		slog.String("kind", string(d.Kind)),
		slog.String("id", created.ID.String()),
	)
	return created, nil
}
