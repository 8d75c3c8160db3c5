// Package handler provides the command handlers of the gather CLI.
//
// Each handler struct encapsulates the services one command group needs
// and exposes urfave/cli actions. Output goes through a Renderer, which
// prints the panels the discovery layout calls for as aligned text.
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts a config struct with dependencies
//   - Methods (or method factories taking an entity kind) are cli.ActionFunc values
//   - The session comes from the Sessions dependency on every call
//   - Errors are mapped by MapServiceError to a Failure carrying the exit status
//
// # Example Usage
//
//	h := NewDiscoveryHandler(DiscoveryHandlerConfig{
//	    Discovery: discoveryService,
//	    Sessions:  authService,
//	    Renderer:  NewRenderer(os.Stdout, loc, "ru_RU"),
//	})
//	cmd := &cli.Command{Name: "events", Action: h.List(model.KindEvent)}
package handler
