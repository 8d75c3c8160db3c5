package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/model"
)

func newCreate(c EntityCreator) *CreateService {
	return NewCreateService(CreateServiceConfig{Creator: c, Location: time.FixedZone("MSK", 3*60*60)})
}

// ============================================================================
// Create Tests
// ============================================================================

func TestCreate_EventConvertsLocalTimesToUTC(t *testing.T) {
	t.Parallel()

	var sent model.Entity
	creator := &mockCreator{
		createFunc: func(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error) {
			sent = e
			created := e
			created.ID = "10"
			return &created, nil
		},
	}
	got, err := newCreate(creator).Create(context.Background(), model.NewSession("4"), model.Draft{
		Kind:            model.KindEvent,
		Name:            "  Пикник ",
		Start:           "2025-06-01T12:00",
		End:             "2025-06-01T15:30",
		MaxParticipants: 20,
		Place:           model.Place{Address: "Парк Победы", Latitude: 55.73, Longitude: 37.5},
	})
	require.NoError(t, err)

	assert.Equal(t, model.ID("10"), got.ID)
	assert.Equal(t, "Пикник", sent.Name)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), sent.StartTime)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), sent.EndTime)
	assert.Equal(t, model.AccessPublic, sent.Access)
	assert.Equal(t, model.ID("4"), sent.CreatorID)
	assert.Equal(t, "Парк Победы", sent.Location.Address)
}

func TestCreate_GroupDefaultsType(t *testing.T) {
	t.Parallel()

	var sent model.Entity
	creator := &mockCreator{
		createFunc: func(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error) {
			sent = e
			return &model.Entity{}, nil
		},
	}
	got, err := newCreate(creator).Create(context.Background(), model.NewSession("4"), model.Draft{
		Kind:            model.KindGroup,
		Name:            "Шахматы",
		Start:           "2025-06-01T12:00",
		MaxParticipants: 8,
		Access:          model.AccessPrivate,
	})
	require.NoError(t, err)

	assert.Equal(t, model.GroupTypeLongTerm, sent.GroupType)
	assert.Equal(t, "Шахматы", got.Name, "an empty echo falls back to the submitted record")
	assert.Equal(t, model.KindGroup, got.Kind)
}

func TestCreate_InvalidDraftSendsNothing(t *testing.T) {
	t.Parallel()

	creator := &mockCreator{
		createFunc: func(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error) {
			t.Fatal("create called for an invalid draft")
			return nil, nil
		},
	}
	_, err := newCreate(creator).Create(context.Background(), model.NewSession("4"), model.Draft{
		Kind:  model.KindEvent,
		Start: "2025-06-01T12:00",
		End:   "2025-06-01T11:00",
	})
	require.ErrorIs(t, err, model.ErrValidation)

	var merr *model.Error
	require.ErrorAs(t, err, &merr)
	fields := map[string]bool{}
	for _, f := range merr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["maxParticipants"])
	assert.True(t, fields["endTime"])
}

func TestCreate_RequiresSession(t *testing.T) {
	t.Parallel()

	_, err := newCreate(&mockCreator{}).Create(context.Background(), model.NoSession(), model.Draft{})
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}
