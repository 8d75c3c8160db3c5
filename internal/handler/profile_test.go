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

func (e *testEnv) editCommand() *cli.Command {
	return &cli.Command{
		Name: "edit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username"},
			&cli.IntFlag{Name: "age"},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "bio"},
			&cli.StringFlag{Name: "language"},
			&cli.StringSliceFlag{Name: "interest"},
		},
		Action: e.profile.Edit,
	}
}

// ============================================================================
// Profile Tests
// ============================================================================

func TestProfileHandler_Show(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-1")
	env.backend.JSON("GET /api/v1/users/me", http.StatusOK, model.UserProfile{
		UserID:   "u-1",
		Username: "anna",
		City:     "Москва",
	})

	require.NoError(t, env.run(&cli.Command{Name: "show", Action: env.profile.Show}))

	out := env.out.String()
	assert.Contains(t, out, "anna")
	assert.Contains(t, out, "Москва")
}

func TestProfileHandler_Show_Unauthenticated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := env.run(&cli.Command{Name: "show", Action: env.profile.Show})
	assert.Equal(t, ExitUnauthenticated, exitCode(err))
	assert.Empty(t, env.backend.Requests())
}

func TestProfileHandler_Edit_SendsOnlyGivenFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-1")
	env.backend.JSON("PATCH /api/v1/users/me", http.StatusOK, model.UserProfile{UserID: "u-1", City: "Казань"})

	require.NoError(t, env.run(env.editCommand(), "--city", "Казань"))
	assert.Contains(t, env.out.String(), "Profile updated")

	requests := env.backend.Requests()
	require.Len(t, requests, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(requests[0].Body, &sent))
	assert.Equal(t, map[string]any{"city": "Казань"}, sent)
}

func TestProfileHandler_Edit_Empty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-1")

	err := env.run(env.editCommand())
	assert.Equal(t, ExitInvalidInput, exitCode(err))
	assert.Empty(t, env.backend.Requests())
}

func TestProfileHandler_Edit_InvalidLanguage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signIn(t, "u-1")

	err := env.run(env.editCommand(), "--language", "de")
	assert.Equal(t, ExitInvalidInput, exitCode(err))
	assert.Contains(t, err.Error(), "preferences.language")
}
