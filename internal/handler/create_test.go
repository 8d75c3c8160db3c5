package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
)

func (e *testEnv) createCommand(kind model.EntityKind) *cli.Command {
	return &cli.Command{
		Name: string(kind),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "image"},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "start"},
			&cli.StringFlag{Name: "end"},
			&cli.IntFlag{Name: "max"},
			&cli.StringFlag{Name: "access", Value: string(model.AccessPublic)},
			&cli.IntFlag{Name: "age"},
			&cli.Float64Flag{Name: "price"},
			&cli.StringFlag{Name: "requirements"},
			&cli.StringSliceFlag{Name: "interest"},
			&cli.StringFlag{Name: "address"},
			&cli.IntFlag{Name: "pick", Value: 1},
			&cli.Float64Flag{Name: "lat"},
			&cli.Float64Flag{Name: "lon"},
			&cli.StringFlag{Name: "type", Value: model.GroupTypeLongTerm},
		},
		Action: e.create.Create(kind),
	}
}

var tverskaya = []map[string]any{
	{"place_id": 101, "display_name": "Тверская улица, 1, Москва", "lat": "55.7575", "lon": "37.6130"},
	{"place_id": 102, "display_name": "Тверская улица, 2, Москва", "lat": "55.7580", "lon": "37.6120"},
}

// ============================================================================
// Create Tests
// ============================================================================

func TestCreateHandler_Create_Event(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-9")
	env.backend.JSON("GET /places/search", http.StatusOK, tverskaya)
	env.backend.JSON("POST /api/v1/events", http.StatusCreated, map[string]any{"eventId": "e-new", "name": "Board games"})

	err := env.run(env.createCommand(model.KindEvent),
		"--name", "Board games",
		"--start", "2025-11-20T18:00",
		"--max", "12",
		"--address", "Тверская",
		"--pick", "2",
	)
	require.NoError(t, err)
	assert.Equal(t, "Created event Board games (e-new)\n", env.out.String())

	var sent model.Entity
	for _, r := range env.backend.Requests() {
		if r.Method == http.MethodPost {
			require.NoError(t, json.Unmarshal(r.Body, &sent))
		}
	}
	assert.Equal(t, "Board games", sent.Name)
	assert.Equal(t, model.ID("u-9"), sent.CreatorID)
	assert.Equal(t, "Тверская улица, 2, Москва", sent.Location.Address)
	assert.InDelta(t, 55.7580, sent.Location.Latitude, 1e-9)
	assert.Equal(t, 12, sent.MaxParticipants)
}

func TestCreateHandler_Create_Coordinates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-9")
	env.backend.JSON("GET /places/reverse", http.StatusOK,
		map[string]any{"place_id": 7, "display_name": "Парк Горького, Москва", "lat": "55.73", "lon": "37.60"})
	env.backend.JSON("POST /api/v1/groups", http.StatusCreated, map[string]any{"groupId": "g-new", "name": "Runners"})

	err := env.run(env.createCommand(model.KindGroup),
		"--name", "Runners",
		"--start", "2025-11-20T08:00",
		"--max", "30",
		"--lat", "55.73", "--lon", "37.60",
	)
	require.NoError(t, err)
	assert.Equal(t, "Created group Runners (g-new)\n", env.out.String())
	assert.Equal(t, 1, env.backend.Count(http.MethodGet, "/places/reverse"))
}

func TestCreateHandler_Create_Invalid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-9")

	err := env.run(env.createCommand(model.KindEvent), "--start", "tomorrow")

	assert.Equal(t, ExitInvalidInput, exitCode(err))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "startTime")
	assert.Zero(t, env.backend.Count(http.MethodPost, "/api/v1/events"))
}

func TestCreateHandler_Create_Unauthenticated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := env.run(env.createCommand(model.KindEvent), "--name", "Board games")
	assert.Equal(t, ExitUnauthenticated, exitCode(err))
	assert.Empty(t, env.backend.Requests())
}

func TestCreateHandler_Create_LatWithoutLon(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-9")

	err := env.run(env.createCommand(model.KindEvent), "--name", "Board games", "--lat", "55.7")
	assert.Equal(t, ExitInvalidInput, exitCode(err))
}
