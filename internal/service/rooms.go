package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/gather/internal/fallback"
	"github.com/forgo/gather/internal/model"
)

// RoomSource lists the signed-in user's groups
type RoomSource interface {
	Administered(ctx context.Context, session model.Session) ([]model.Entity, error)
	Mine(ctx context.Context, session model.Session) ([]model.Entity, error)
}

// Rooms is the user's groups split by role
type Rooms struct {
	Administered         []model.Entity
	Member               []model.Entity
	AdministeredDegraded bool
	MemberDegraded       bool
}

// RoomsService loads the "my rooms" page
type RoomsService struct {
	source RoomSource
	log    *slog.Logger
}

// RoomsServiceConfig holds configuration for the rooms service
type RoomsServiceConfig struct {
	Source RoomSource
	Logger *slog.Logger
}

// NewRoomsService creates a new rooms service
func NewRoomsService(cfg RoomsServiceConfig) *RoomsService {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &RoomsService{source: cfg.Source, log: log}
}

// Rooms loads administered and member groups concurrently. Each list
// degrades to the fallback groups independently.
func (s *RoomsService) Rooms(ctx context.Context, session model.Session) (Rooms, error) {
	if !session.Authenticated() {
		return Rooms{}, model.NewUnauthenticatedError()
	}

	var rooms Rooms
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rooms.Administered, rooms.AdministeredDegraded = s.load(gctx, "administered", func(ctx context.Context) ([]model.Entity, error) {
			return s.source.Administered(ctx, session)
		})
		return nil
	})
	g.Go(func() error {
		rooms.Member, rooms.MemberDegraded = s.load(gctx, "member", func(ctx context.Context) ([]model.Entity, error) {
			return s.source.Mine(ctx, session)
		})
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Rooms{}, err
	}
	return rooms, nil
}

func (s *RoomsService) load(ctx context.Context, list string, fetch func(context.Context) ([]model.Entity, error)) ([]model.Entity, bool) {
	groups, err := fetch(ctx)
	if err != nil {
		s.log.Warn("rooms load failed, using fallback data",
			slog.String("list", list),
			slog.String("error", err.Error()),
		)
		return fallback.Groups(), true
	}
	return model.WithKind(model.KindGroup, groups), false
}
