package model

import "encoding/json"

// ParticipantRole is a participant's role within an entity
type ParticipantRole string

const (
	RoleOrganizer   ParticipantRole = "organizer"
	RoleParticipant ParticipantRole = "participant"
	RolePending     ParticipantRole = "pending" // Application awaiting approval
)

// Participant status constants
const (
	ParticipantStatusConfirmed = "confirmed"
	ParticipantStatusPending   = "pending"
)

// PlaceholderName is shown for the current user when the backend returns no user data
const PlaceholderName = "You"

// Participant is a user's membership record within one entity.
// Identity is (entity, UserID).
type Participant struct {
	UserID ID              `json:"userId"`
	Name   string          `json:"name"`
	Role   ParticipantRole `json:"role,omitempty"`
	Status string          `json:"status,omitempty"`
}

// DisplayName falls back to a generated label when the backend omitted a name
func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "User " + p.UserID.String()
}

type participantWire struct {
	UserID   ID              `json:"userId"`
	RawID    ID              `json:"id"`
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Role     ParticipantRole `json:"role"`
	Status   string          `json:"status"`
}

// UnmarshalJSON accepts both the event participant shape (userId) and the
// group member shape (id). UserID is the only identifier kept in memory.
func (p *Participant) UnmarshalJSON(data []byte) error {
	var w participantWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Participant{
		UserID: firstID(w.UserID, w.RawID),
		Name:   firstString(w.Name, w.Username),
		Role:   w.Role,
		Status: w.Status,
	}
	return nil
}
