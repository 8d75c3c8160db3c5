package model

// MembershipState is the join lifecycle of one (entity, user) pair
type MembershipState string

const (
	MembershipNotJoined MembershipState = "not_joined"
	MembershipJoining   MembershipState = "joining"
	MembershipJoined    MembershipState = "joined"
	MembershipFailed    MembershipState = "failed"
)

// CanJoin reports whether a join may start from this state
func (s MembershipState) CanJoin() bool {
	return s == MembershipNotJoined || s == MembershipFailed
}

// JoinActionJoin is the action marker sent with every membership request
const JoinActionJoin = "join"

// DefaultApplicationMessage accompanies applications to private entities
const DefaultApplicationMessage = "I would like to join"

// JoinRequest is the body of a membership-creation request
type JoinRequest struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// JoinResponse is what the services return after a successful join
type JoinResponse struct {
	User *Participant `json:"user,omitempty"`
}

// JoinControl is the label and enablement of the join button
type JoinControl struct {
	Label    string
	Disabled bool
}
