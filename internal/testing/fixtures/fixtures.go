// Package fixtures provides test data factories for gather tests.
//
// Each factory returns a backend-shaped record with sensible defaults while
// allowing customization via option functions.
//
// Usage:
//
//	event := fixtures.Event(fixtures.WithName("IT-митап"), fixtures.WithAge(18))
//	group := fixtures.Group(fixtures.Private())
package fixtures

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/forgo/gather/internal/model"
)

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ============================================================================
// Entity Fixtures
// ============================================================================

// EntityOpts customizes entity creation
type EntityOpts struct {
	ID           model.ID
	Name         string
	City         string
	Start        time.Time
	Max          int
	Access       model.AccessPolicy
	Age          int
	Participants []model.Participant
	Latitude     float64
	Longitude    float64
}

// WithID sets the entity id
func WithID(id model.ID) func(*EntityOpts) {
	return func(o *EntityOpts) { o.ID = id }
}

// WithName sets the entity name
func WithName(name string) func(*EntityOpts) {
	return func(o *EntityOpts) { o.Name = name }
}

// WithCity sets the entity city
func WithCity(city string) func(*EntityOpts) {
	return func(o *EntityOpts) { o.City = city }
}

// WithStart sets the start time
func WithStart(t time.Time) func(*EntityOpts) {
	return func(o *EntityOpts) { o.Start = t }
}

// WithAge sets the age restriction
func WithAge(age int) func(*EntityOpts) {
	return func(o *EntityOpts) { o.Age = age }
}

// WithParticipants embeds a participant list
func WithParticipants(ps ...model.Participant) func(*EntityOpts) {
	return func(o *EntityOpts) { o.Participants = ps }
}

// Private makes the entity application-only
func Private() func(*EntityOpts) {
	return func(o *EntityOpts) { o.Access = model.AccessPrivate }
}

func build(kind model.EntityKind, opts []func(*EntityOpts)) model.Entity {
	o := &EntityOpts{
		ID:        model.ID(randomID()),
		Name:      "Test " + string(kind) + " " + randomID(),
		City:      "Москва",
		Start:     time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC),
		Max:       50,
		Access:    model.AccessPublic,
		Latitude:  55.7558,
		Longitude: 37.6176,
	}
	for _, fn := range opts {
		fn(o)
	}
	return model.Entity{
		Kind:            kind,
		ID:              o.ID,
		Name:            o.Name,
		Location:        model.Location{City: o.City, Latitude: o.Latitude, Longitude: o.Longitude},
		StartTime:       o.Start,
		EndTime:         o.Start.Add(2 * time.Hour),
		MaxParticipants: o.Max,
		Access:          o.Access,
		AgeRestriction:  o.Age,
		Participants:    o.Participants,
	}
}

// Event creates an event with optional customizations
func Event(opts ...func(*EntityOpts)) model.Entity {
	return build(model.KindEvent, opts)
}

// Group creates a group with optional customizations
func Group(opts ...func(*EntityOpts)) model.Entity {
	e := build(model.KindGroup, opts)
	e.GroupType = model.GroupTypeLongTerm
	return e
}

// ============================================================================
// Participant Fixtures
// ============================================================================

// Participant creates a confirmed participant
func Participant(id model.ID, name string) model.Participant {
	return model.Participant{
		UserID: id,
		Name:   name,
		Role:   model.RoleParticipant,
		Status: model.ParticipantStatusConfirmed,
	}
}

// Organizer creates a confirmed organizer
func Organizer(id model.ID, name string) model.Participant {
	p := Participant(id, name)
	p.Role = model.RoleOrganizer
	return p
}
