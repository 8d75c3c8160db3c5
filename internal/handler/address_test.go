package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// ============================================================================
// Address Tests
// ============================================================================

func TestAddressHandler_Search(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.backend.JSON("GET /places/search", http.StatusOK, tverskaya)

	require.NoError(t, env.run(&cli.Command{Name: "search", Action: env.address.Search}, "Тверская"))

	out := env.out.String()
	assert.Contains(t, out, "Тверская улица, 1, Москва")
	assert.Contains(t, out, "Тверская улица, 2, Москва")

	requests := env.backend.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].Query, "format=json")
}

func TestAddressHandler_Search_MissingText(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := env.run(&cli.Command{Name: "search", Action: env.address.Search})
	assert.Equal(t, ExitInvalidInput, exitCode(err))
}

func TestAddressHandler_Reverse(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.backend.JSON("GET /places/reverse", http.StatusOK,
		map[string]any{"place_id": 7, "display_name": "Парк Горького, Москва", "lat": "55.73", "lon": "37.60"})

	require.NoError(t, env.run(&cli.Command{Name: "reverse", Action: env.address.Reverse}, "55.73", "37.60"))
	assert.Contains(t, env.out.String(), "Парк Горького, Москва")
}

func TestAddressHandler_Reverse_BadCoordinates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	err := env.run(&cli.Command{Name: "reverse", Action: env.address.Reverse}, "91", "37.60")
	assert.Equal(t, ExitInvalidInput, exitCode(err))
	assert.Empty(t, env.backend.Requests())
}
