package model

import (
	"encoding/json"
	"strings"
	"time"
)

// EntityKind distinguishes events from groups. Both share one record shape.
type EntityKind string

const (
	KindEvent EntityKind = "event"
	KindGroup EntityKind = "group"
)

// AccessPolicy controls whether joining is immediate or an application
type AccessPolicy string

const (
	AccessPublic  AccessPolicy = "public"  // Join immediately
	AccessPrivate AccessPolicy = "private" // Submit an application, pending approval
)

// IsPrivate reports whether joining requires an application message
func (p AccessPolicy) IsPrivate() bool {
	return strings.EqualFold(string(p), string(AccessPrivate))
}

// Ref identifies an entity across both services
type Ref struct {
	Kind EntityKind
	ID   ID
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + string(r.ID)
}

// Location is where an entity takes place
type Location struct {
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HasCoordinates reports whether the location can be placed on a map
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// Entity is an event or a group as displayed and joined by users
type Entity struct {
	Kind        EntityKind
	ID          ID
	Name        string
	Description string
	ImageURL    string
	Location    Location
	StartTime   time.Time
	EndTime     time.Time
	// Capacity as reported by the backend. The backend value may disagree with
	// the participant list; the list wins when it has been loaded.
	MaxParticipants      int
	ReportedParticipants int
	Access               AccessPolicy
	Status               string
	Price                float64
	AgeRestriction       int
	Requirements         string
	CreatorID            ID
	Interests            []ID
	// Group-only fields
	GroupType string
	Topics    []string
	Rules     string
	// Participants is nil when the backend did not embed a list
	Participants []Participant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ref returns the entity's cross-service reference
func (e *Entity) Ref() Ref {
	return Ref{Kind: e.Kind, ID: e.ID}
}

// CurrentParticipants is derived from the participant list when one is loaded
func (e *Entity) CurrentParticipants() int {
	if e.Participants != nil {
		return len(e.Participants)
	}
	return e.ReportedParticipants
}

// IsFull reports whether the entity has reached its capacity
func (e *Entity) IsFull() bool {
	return e.MaxParticipants > 0 && e.CurrentParticipants() >= e.MaxParticipants
}

// HasParticipant reports whether the given user appears in the participant list
func (e *Entity) HasParticipant(userID ID) bool {
	if userID.IsZero() {
		return false
	}
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with the receiver
func (e Entity) Clone() Entity {
	c := e
	if e.Participants != nil {
		c.Participants = append([]Participant{}, e.Participants...)
	}
	if e.Interests != nil {
		c.Interests = append([]ID{}, e.Interests...)
	}
	if e.Topics != nil {
		c.Topics = append([]string{}, e.Topics...)
	}
	return c
}

// entityWire is the flat JSON shape both services use
type entityWire struct {
	EventID             ID            `json:"eventId,omitempty"`
	GroupID             ID            `json:"groupId,omitempty"`
	RawID               ID            `json:"id,omitempty"`
	Name                string        `json:"name"`
	Title               string        `json:"title,omitempty"`
	Description         string        `json:"description"`
	Details             string        `json:"details,omitempty"`
	ImageURL            string        `json:"imageUrl"`
	City                string        `json:"city"`
	Address             string        `json:"address"`
	Latitude            float64       `json:"latitude"`
	Longitude           float64       `json:"longitude"`
	AccessType          AccessPolicy  `json:"accessType"`
	Status              string        `json:"status,omitempty"`
	StartTime           string        `json:"startTime"`
	EndTime             string        `json:"endTime"`
	MaxParticipants     int           `json:"maxParticipants"`
	CurrentParticipants int           `json:"currentParticipants"`
	Interests           []ID          `json:"interests"`
	AgeRestriction      int           `json:"ageRestriction"`
	Price               float64       `json:"price"`
	Requirements        string        `json:"requirements"`
	CreatorID           ID            `json:"creatorId,omitempty"`
	Type                string        `json:"type,omitempty"`
	Topics              []string      `json:"topics,omitempty"`
	Rules               string        `json:"rules,omitempty"`
	Participants        []Participant `json:"participants,omitempty"`
	CreatedAt           string        `json:"createdAt,omitempty"`
	UpdatedAt           string        `json:"updatedAt,omitempty"`
}

// UnmarshalJSON decodes either service's record. Kind is left for the caller.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var w entityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Entity{
		Kind:        e.Kind,
		ID:          firstID(w.EventID, w.GroupID, w.RawID),
		Name:        firstString(w.Name, w.Title),
		Description: firstString(w.Description, w.Details),
		ImageURL:    w.ImageURL,
		Location: Location{
			City:      w.City,
			Address:   w.Address,
			Latitude:  w.Latitude,
			Longitude: w.Longitude,
		},
		StartTime:            ParseTimestamp(w.StartTime),
		EndTime:              ParseTimestamp(w.EndTime),
		MaxParticipants:      w.MaxParticipants,
		ReportedParticipants: w.CurrentParticipants,
		Access:               w.AccessType,
		Status:               w.Status,
		Price:                w.Price,
		AgeRestriction:       w.AgeRestriction,
		Requirements:         w.Requirements,
		CreatorID:            w.CreatorID,
		Interests:            w.Interests,
		GroupType:            w.Type,
		Topics:               w.Topics,
		Rules:                w.Rules,
		Participants:         w.Participants,
		CreatedAt:            ParseTimestamp(w.CreatedAt),
		UpdatedAt:            ParseTimestamp(w.UpdatedAt),
	}
	if e.Access == "" {
		e.Access = AccessPublic
	}
	return nil
}

// MarshalJSON writes the record back in the wire shape of its kind
func (e Entity) MarshalJSON() ([]byte, error) {
	w := entityWire{
		Name:                e.Name,
		Description:         e.Description,
		ImageURL:            e.ImageURL,
		City:                e.Location.City,
		Address:             e.Location.Address,
		Latitude:            e.Location.Latitude,
		Longitude:           e.Location.Longitude,
		AccessType:          e.Access,
		Status:              e.Status,
		StartTime:           FormatTimestamp(e.StartTime),
		EndTime:             FormatTimestamp(e.EndTime),
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants(),
		Interests:           e.Interests,
		AgeRestriction:      e.AgeRestriction,
		Price:               e.Price,
		Requirements:        e.Requirements,
		CreatorID:           e.CreatorID,
		Type:                e.GroupType,
		Topics:              e.Topics,
		Rules:               e.Rules,
		Participants:        e.Participants,
		CreatedAt:           FormatTimestamp(e.CreatedAt),
		UpdatedAt:           FormatTimestamp(e.UpdatedAt),
	}
	switch e.Kind {
	case KindGroup:
		w.GroupID = e.ID
	case KindEvent:
		w.EventID = e.ID
	default:
		w.RawID = e.ID
	}
	return json.Marshal(w)
}

// WithKind stamps every entity with the given kind
func WithKind(kind EntityKind, entities []Entity) []Entity {
	for i := range entities {
		entities[i].Kind = kind
	}
	return entities
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
