package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable. Failures that come
// from the backends are *model.Error values and match the model sentinels.

// ===== Membership Errors =====
var (
	ErrEntityNotTracked = errors.New("entity is not tracked")
)

// ===== View Errors =====
var (
	ErrEntityNotDisplayed = errors.New("entity is not in the displayed collection")
	ErrInvalidViewMode    = errors.New("view mode must be 'map' or 'list'")
)

// ===== Address Lookup Errors =====
var (
	ErrLookupClosed     = errors.New("address lookup closed")
	ErrNoSuchSuggestion = errors.New("no such suggestion")
)

// ===== Profile Errors =====
var (
	ErrEmptyPatch = errors.New("nothing to update")
)

// ===== Auth Errors =====
var (
	ErrMissingUserID = errors.New("login response carried no user id")
)
