package model

import (
	"strings"
	"time"
)

// GroupTypeLongTerm is the default group type. The spelling matches what the
// groups service stores.
const GroupTypeLongTerm = "LONG_TURM"

// Draft is the raw input of the create-event and create-group forms.
// Start and End use LocalDateTimeLayout in the viewer's time zone.
type Draft struct {
	Kind            EntityKind
	Name            string
	Description     string
	ImageURL        string
	City            string
	Place           Place
	Start           string
	End             string
	MaxParticipants int
	Access          AccessPolicy
	Interests       []ID
	AgeRestriction  int
	Price           float64
	Requirements    string
	GroupType       string
}

// Validate runs the form checks. loc resolves Start and End.
func (d *Draft) Validate(loc *time.Location) []FieldError {
	var errors []FieldError

	if strings.TrimSpace(d.Name) == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if d.Access != "" && d.Access != AccessPublic && d.Access != AccessPrivate {
		errors = append(errors, FieldError{Field: "accessType", Message: "access must be 'public' or 'private'"})
	}
	if d.MaxParticipants <= 0 {
		errors = append(errors, FieldError{Field: "maxParticipants", Message: "max participants must be positive"})
	}
	if d.AgeRestriction < 0 {
		errors = append(errors, FieldError{Field: "ageRestriction", Message: "age restriction must not be negative"})
	}
	if d.Price < 0 {
		errors = append(errors, FieldError{Field: "price", Message: "price must not be negative"})
	}

	start, startErr := ParseLocalDateTime(d.Start, loc)
	if startErr != nil {
		errors = append(errors, FieldError{Field: "startTime", Message: startErr.Error()})
	}
	if d.End != "" {
		end, err := ParseLocalDateTime(d.End, loc)
		switch {
		case err != nil:
			errors = append(errors, FieldError{Field: "endTime", Message: err.Error()})
		case startErr == nil && !end.After(start):
			errors = append(errors, FieldError{Field: "endTime", Message: "end must be after start"})
		}
	}

	return errors
}

// Entity converts a validated draft into the record sent to the backend.
// Times are converted to UTC.
func (d *Draft) Entity(loc *time.Location) (Entity, error) {
	if errs := d.Validate(loc); len(errs) > 0 {
		return Entity{}, NewValidationError(errs)
	}
	start, _ := ParseLocalDateTime(d.Start, loc)
	var end time.Time
	if d.End != "" {
		end, _ = ParseLocalDateTime(d.End, loc)
	}

	access := d.Access
	if access == "" {
		access = AccessPublic
	}
	e := Entity{
		Kind:        d.Kind,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Location: Location{
			City:      d.City,
			Address:   d.Place.Address,
			Latitude:  d.Place.Latitude,
			Longitude: d.Place.Longitude,
		},
		StartTime:       start,
		EndTime:         end,
		MaxParticipants: d.MaxParticipants,
		Access:          access,
		Interests:       d.Interests,
		AgeRestriction:  d.AgeRestriction,
		Price:           d.Price,
		Requirements:    d.Requirements,
	}
	if d.Kind == KindGroup {
		e.GroupType = d.GroupType
		if e.GroupType == "" {
			e.GroupType = GroupTypeLongTerm
		}
	}
	return e, nil
}
