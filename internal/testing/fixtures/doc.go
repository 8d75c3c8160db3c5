// Package fixtures provides test data factories for gather.
//
// # Factory Pattern
//
// Factories return entities shaped like the backend records:
//
//	event := fixtures.Event()
//	group := fixtures.Group(fixtures.Private())
//
// # Customization
//
// Use option functions for customization:
//
//	event := fixtures.Event(fixtures.WithCity("Казань"), fixtures.WithAge(18))
//
// # Random Data
//
// Ids and names get a random suffix unless set explicitly.
package fixtures
