package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/client"
	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
	"github.com/forgo/gather/internal/store"
	"github.com/forgo/gather/internal/testing/helpers"
	"github.com/forgo/gather/internal/testing/testdb"
)

// ============================================================================
// Test Environment
// ============================================================================

// testEnv wires the real clients and services to a fake backend
type testEnv struct {
	backend    *helpers.Backend
	store      *store.Store
	out        *bytes.Buffer
	membership *service.MembershipService
	auth       *AuthHandler
	discovery  *DiscoveryHandler
	rooms      *RoomsHandler
	profile    *ProfileHandler
	address    *AddressHandler
	create     *CreateHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	b := helpers.NewBackend(t)
	cfg := b.Config(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := testdb.New(t)
	backends := client.NewBackendsWithClient(cfg, &http.Client{Timeout: 5 * time.Second})

	membership := service.NewMembershipService(service.MembershipServiceConfig{Joiner: backends, Logger: log})
	auth := service.NewAuthService(service.AuthServiceConfig{
		Auth:       backends.Auth,
		Store:      st,
		Membership: membership,
		Logger:     log,
	})
	discovery := service.NewDiscoveryService(service.DiscoveryServiceConfig{
		Source:     backends,
		Membership: membership,
		Location:   time.UTC,
		Logger:     log,
	})

	out := &bytes.Buffer{}
	renderer := NewRenderer(out, time.UTC, "")
	address := NewAddressHandler(AddressHandlerConfig{
		Places:   backends.Places,
		Debounce: service.NoAddressDebounce,
		Renderer: renderer,
		Logger:   log,
	})

	return &testEnv{
		backend:    b,
		store:      st,
		out:        out,
		membership: membership,
		auth:       NewAuthHandler(AuthHandlerConfig{Auth: auth, Renderer: renderer}),
		discovery: NewDiscoveryHandler(DiscoveryHandlerConfig{
			Discovery: discovery,
			Sessions:  auth,
			Renderer:  renderer,
		}),
		rooms: NewRoomsHandler(RoomsHandlerConfig{
			Rooms:      service.NewRoomsService(service.RoomsServiceConfig{Source: backends.Groups, Logger: log}),
			Membership: membership,
			Sessions:   auth,
			Renderer:   renderer,
		}),
		profile: NewProfileHandler(ProfileHandlerConfig{
			Profiles: service.NewProfileService(service.ProfileServiceConfig{Users: backends.Users, Interests: backends.Auth}),
			Sessions: auth,
			Renderer: renderer,
		}),
		address: address,
		create: NewCreateHandler(CreateHandlerConfig{
			Create:   service.NewCreateService(service.CreateServiceConfig{Creator: backends, Location: time.UTC, Logger: log}),
			Address:  address,
			Sessions: auth,
			Renderer: renderer,
		}),
	}
}

// signIn stores a session as a previous login would have
func (e *testEnv) signIn(t *testing.T, id model.ID) {
	t.Helper()
	require.NoError(t, e.store.SaveSession(model.NewSession(id)))
}

// run executes one command with args in a throwaway app
func (e *testEnv) run(cmd *cli.Command, args ...string) error {
	app := &cli.App{
		Name:           "gather",
		Writer:         io.Discard,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands:       []*cli.Command{cmd},
	}
	return app.RunContext(context.Background(), append([]string{"gather", cmd.Name}, args...))
}

// exitCode returns the code carried by err, 0 for nil
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return -1
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "city"},
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "date"},
		&cli.StringFlag{Name: "age"},
		&cli.StringFlag{Name: "view"},
		&cli.IntFlag{Name: "width"},
		&cli.StringFlag{Name: "select"},
	}
}
