// Package service implements the client-side logic of gather.
//
// The service package holds the discovery page state: filtering, view
// modes and selection, join state per entity, and the debounced address
// lookup used by the create forms. Backends are reached through small
// interfaces that the client package satisfies.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Sessions are passed explicitly; no service keeps a current user
//   - Errors are *model.Error values or the sentinel errors in errors.go
//   - Context is passed through for cancellation of requests
//
// # Degraded Loads
//
// List and detail loads never fail on a backend error. They return the
// embedded fallback data and report the result as degraded.
//
// # Example Usage
//
//	discovery := NewDiscoveryService(DiscoveryServiceConfig{
//	    Source:     backends,
//	    Membership: NewMembershipService(MembershipServiceConfig{Joiner: backends}),
//	})
//	page := discovery.Open(ctx, session, model.KindEvent, 1280)
//	shown := page.SetCriteria(model.FilterCriteria{City: "Москва"})
package service
