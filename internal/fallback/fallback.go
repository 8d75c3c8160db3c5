// Package fallback holds the datasets shown when a backend cannot be reached.
//
// List and detail loads degrade to these records so the views stay usable
// offline. The data is embedded at build time; every accessor returns a
// fresh copy that callers may modify.
package fallback

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/forgo/gather/internal/model"
)

//go:embed data/*.json
var files embed.FS

type dataset struct {
	events  []model.Entity
	groups  []model.Entity
	event   model.Entity
	members []model.Participant
}

var (
	loadOnce sync.Once
	loaded   dataset
)

func data() *dataset {
	loadOnce.Do(func() {
		var envelope struct {
			Items []model.Entity `json:"items"`
		}
		mustDecode("data/events.json", &envelope)
		loaded.events = model.WithKind(model.KindEvent, envelope.Items)

		mustDecode("data/groups.json", &loaded.groups)
		loaded.groups = model.WithKind(model.KindGroup, loaded.groups)

		loaded.event.Kind = model.KindEvent
		mustDecode("data/event.json", &loaded.event)

		mustDecode("data/members.json", &loaded.members)
	})
	return &loaded
}

func mustDecode(name string, out any) {
	raw, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fallback: read %s: %v", name, err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("fallback: decode %s: %v", name, err))
	}
}

func cloneAll(in []model.Entity) []model.Entity {
	out := make([]model.Entity, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// Events returns the fallback event list
func Events() []model.Entity {
	return cloneAll(data().events)
}

// Groups returns the fallback group list
func Groups() []model.Entity {
	return cloneAll(data().groups)
}

// List returns the fallback list for kind
func List(kind model.EntityKind) []model.Entity {
	if kind == model.KindGroup {
		return Groups()
	}
	return Events()
}

// Entity returns the fallback detail record for ref. A matching list record
// is preferred; otherwise the generic record is stamped with ref's id.
func Entity(ref model.Ref) model.Entity {
	d := data()
	list := d.events
	generic := d.event
	if ref.Kind == model.KindGroup {
		list = d.groups
		generic = d.groups[0]
	}
	for _, e := range list {
		if e.ID == ref.ID {
			return e.Clone()
		}
	}
	e := generic.Clone()
	e.Kind = ref.Kind
	if !ref.ID.IsZero() {
		e.ID = ref.ID
	}
	return e
}

// Participants returns the fallback participants for ref's kind
func Participants(ref model.Ref) []model.Participant {
	d := data()
	if ref.Kind == model.KindGroup {
		return append([]model.Participant{}, d.members...)
	}
	return append([]model.Participant{}, d.event.Participants...)
}
