// Package model defines the records shared by the gather client, its services
// and its command handlers.
//
// # Entities
//
// Events and groups share one record shape, Entity, distinguished by Kind:
//
//	type Entity struct {
//	    Kind         EntityKind   // KindEvent or KindGroup
//	    ID           ID
//	    Access       AccessPolicy // public joins immediately, private applies
//	    Participants []Participant
//	    ...
//	}
//
// The backends are not consistent about field names. Entity and Participant
// decode every variant seen on the wire (eventId/groupId/id, userId/id,
// numeric or string identifiers) into one canonical in-memory form.
// Participant.UserID is the only participant identifier used past decoding.
//
// # Sessions
//
// Session replaces a process-wide "current user" value. Operations that need
// a user take a Session explicitly; NoSession is its zero value.
//
// # Errors
//
// Failures are *Error values of four kinds, matched with errors.Is:
//
//	errors.Is(err, model.ErrNetworkFailure)  // transport or unreadable non-2xx
//	errors.Is(err, model.ErrServerRejection) // non-2xx with a message
//	errors.Is(err, model.ErrValidation)      // local checks, see Fields
//	errors.Is(err, model.ErrUnauthenticated) // no current user
//
// ProblemDetails decodes RFC 9457 bodies returned by the backends.
package model
