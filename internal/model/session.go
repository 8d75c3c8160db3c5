package model

// Session carries the current user into every operation that needs one.
// The zero value is the "no session" variant.
type Session struct {
	userID ID
}

// NewSession returns an authenticated session. An empty id yields NoSession.
func NewSession(userID ID) Session {
	return Session{userID: userID}
}

// NoSession returns the unauthenticated variant
func NoSession() Session {
	return Session{}
}

// UserID returns the user identifier and whether the session is authenticated
func (s Session) UserID() (ID, bool) {
	return s.userID, !s.userID.IsZero()
}

// Authenticated reports whether a user is signed in
func (s Session) Authenticated() bool {
	return !s.userID.IsZero()
}

// AuthorizationValue is the bare header value the backends expect
func (s Session) AuthorizationValue() string {
	return string(s.userID)
}

func (s Session) String() string {
	if !s.Authenticated() {
		return "no session"
	}
	return "user " + string(s.userID)
}
