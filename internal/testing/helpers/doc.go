// Package helpers provides test utility functions for gather.
//
// # Fake Backend
//
// One httptest server plays the auth, users, groups, events and place
// search services:
//
//	b := helpers.NewBackend(t)
//	b.JSON("GET /api/v1/events", http.StatusOK, []model.Entity{event})
//	cfg := b.Config(t)
//	n := b.Count(http.MethodPost, "/api/v1/events/1/participants")
//
// # Assertion Helpers
//
//	helpers.AssertKind(t, err, model.KindNetworkFailure)
//	helpers.AssertValidationError(t, err, "email")
//
// # Pointer Helpers
//
//	name := helpers.StringPtr("test")
//	age := helpers.IntPtr(18)
package helpers
