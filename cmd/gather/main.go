package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/client"
	"github.com/forgo/gather/internal/config"
	"github.com/forgo/gather/internal/handler"
	"github.com/forgo/gather/internal/service"
	"github.com/forgo/gather/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// newLogger logs as text to a terminal and as JSON otherwise
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "gather: load config: %v\n", err)
		return handler.ExitInternal
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "gather: invalid configuration:\n%v\n", err)
		return handler.ExitInternal
	}

	// Initialize structured logging
	logger := newLogger(stderr, cfg.LogLevel())
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", slog.String("error", err.Error()))
		return handler.ExitInternal
	}
	// Zone-less backend timestamps are wall clock times in the viewer's zone
	time.Local = loc

	// Open the local session store
	st, err := store.Open(cfg.Session.Path)
	if err != nil {
		logger.Error("failed to open session store", slog.String("error", err.Error()))
		return handler.ExitInternal
	}
	defer func() { _ = st.Close() }()

	// Initialize backend clients
	backends := client.NewBackends(cfg, logger)

	// Initialize services
	membership := service.NewMembershipService(service.MembershipServiceConfig{
		Joiner: backends,
		Logger: logger,
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		Auth:       backends.Auth,
		Store:      st,
		Membership: membership,
		Logger:     logger,
	})
	discoveryService := service.NewDiscoveryService(service.DiscoveryServiceConfig{
		Source:         backends,
		Membership:     membership,
		Location:       loc,
		MobileMaxWidth: cfg.Display.MobileMaxWidth,
		Logger:         logger,
	})
	roomsService := service.NewRoomsService(service.RoomsServiceConfig{
		Source: backends.Groups,
		Logger: logger,
	})
	profileService := service.NewProfileService(service.ProfileServiceConfig{
		Users:     backends.Users,
		Interests: backends.Auth,
	})
	createService := service.NewCreateService(service.CreateServiceConfig{
		Creator:  backends,
		Location: loc,
		Logger:   logger,
	})

	// Initialize handlers
	renderer := handler.NewRenderer(stdout, loc, cfg.Display.Locale)
	addressHandler := handler.NewAddressHandler(handler.AddressHandlerConfig{
		Places:   backends.Places,
		Debounce: cfg.Places.Debounce,
		Renderer: renderer,
		Logger:   logger,
	})
	h := handlers{
		auth: handler.NewAuthHandler(handler.AuthHandlerConfig{
			Auth:     authService,
			Renderer: renderer,
		}),
		discovery: handler.NewDiscoveryHandler(handler.DiscoveryHandlerConfig{
			Discovery: discoveryService,
			Sessions:  authService,
			Renderer:  renderer,
		}),
		rooms: handler.NewRoomsHandler(handler.RoomsHandlerConfig{
			Rooms:      roomsService,
			Membership: membership,
			Sessions:   authService,
			Renderer:   renderer,
		}),
		profile: handler.NewProfileHandler(handler.ProfileHandlerConfig{
			Profiles: profileService,
			Sessions: authService,
			Renderer: renderer,
		}),
		create: handler.NewCreateHandler(handler.CreateHandlerConfig{
			Create:   createService,
			Address:  addressHandler,
			Sessions: authService,
			Renderer: renderer,
		}),
		address: addressHandler,
	}

	app := newApp(h)
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "gather: %v\n", err)
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			return coder.ExitCode()
		}
		return handler.ExitInternal
	}
	return 0
}
