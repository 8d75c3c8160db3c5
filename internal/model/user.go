package model

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Supported profile languages
const (
	LanguageRussian = "ru"
	LanguageEnglish = "en"
)

// UserProfile is the signed-in user's profile from the users service
type UserProfile struct {
	UserID      ID          `json:"userId"`
	Username    string      `json:"username"`
	AvatarURL   string      `json:"avatarUrl,omitempty"`
	Age         int         `json:"age"`
	City        string      `json:"city"`
	Bio         string      `json:"bio"`
	InterestIDs []ID        `json:"interestIds"`
	Preferences Preferences `json:"preferences"`
	Rating      *float64    `json:"rating,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
}

// Preferences holds user display preferences
type Preferences struct {
	Language string `json:"language,omitempty"`
}

// Created returns the parsed creation timestamp
func (u *UserProfile) Created() time.Time {
	return ParseTimestamp(u.CreatedAt)
}

// ProfilePatch is a partial profile update. Nil fields are not sent.
type ProfilePatch struct {
	Username    *string      `json:"username,omitempty"`
	Age         *int         `json:"age,omitempty"`
	City        *string      `json:"city,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	InterestIDs []ID         `json:"interestIds,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *ProfilePatch) IsEmpty() bool {
	return p.Username == nil && p.Age == nil && p.City == nil && p.Bio == nil &&
		p.InterestIDs == nil && p.Preferences == nil
}

// Validate checks the patch before it is sent
func (p *ProfilePatch) Validate() []FieldError {
	var errors []FieldError

	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		errors = append(errors, FieldError{Field: "username", Message: "username must not be blank"})
	}
	if p.Age != nil && *p.Age < 0 {
		errors = append(errors, FieldError{Field: "age", Message: "age must not be negative"})
	}
	if p.Preferences != nil && p.Preferences.Language != "" &&
		p.Preferences.Language != LanguageRussian && p.Preferences.Language != LanguageEnglish {
		errors = append(errors, FieldError{Field: "preferences.language", Message: "language must be 'ru' or 'en'"})
	}

	return errors
}

// Interest is a selectable interest tag
type Interest struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// NormalizeInterests accepts the interests endpoint's mixed output:
// plain strings get a 1-based positional id.
func NormalizeInterests(raw []json.RawMessage) []Interest {
	out := make([]Interest, 0, len(raw))
	for i, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, Interest{ID: ID(strconv.Itoa(i + 1)), Name: name})
			continue
		}
		var it Interest
		if err := json.Unmarshal(item, &it); err == nil {
			out = append(out, it)
		}
	}
	return out
}

// LoginRequest is the auth service login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate runs the login form checks
func (r *LoginRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(r.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "email format is invalid"})
	}
	if r.Password == "" {
		errors = append(errors, FieldError{Field: "password", Message: "password is required"})
	}

	return errors
}

// LoginResponse is the auth service reply. Older deployments send user_id.
type LoginResponse struct {
	UserID       ID     `json:"userId"`
	LegacyUserID ID     `json:"user_id"`
	Message      string `json:"message"`
}

// Identifier returns whichever user id field the service populated
func (r *LoginResponse) Identifier() ID {
	return firstID(r.UserID, r.LegacyUserID)
}

