package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/forgo/gather/internal/model"
)

// Joiner sends membership-creation requests
type Joiner interface {
	Join(ctx context.Context, session model.Session, ref model.Ref, req model.JoinRequest) (*model.JoinResponse, error)
}

// GenericJoinFailure is shown when a failed join carries no server message
const GenericJoinFailure = "Could not join. Please try again."

// MembershipService tracks the join state of every entity in view for the
// current user. It is the only writer of participant lists after load.
type MembershipService struct {
	mu       sync.Mutex
	joiner   Joiner
	entries  map[model.Ref]*membershipEntry
	inflight map[inflightKey]struct{}
	log      *slog.Logger
}

// inflightKey identifies one user's pending join of one entity. It outlives
// the entry, which Reset may drop while the request is still out.
type inflightKey struct {
	ref    model.Ref
	userID model.ID
}

type membershipEntry struct {
	entity  model.Entity
	userID  model.ID
	state   model.MembershipState
	message string
}

// MembershipServiceConfig holds configuration for the membership service
type MembershipServiceConfig struct {
	Joiner Joiner
	Logger *slog.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(cfg MembershipServiceConfig) *MembershipService {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &MembershipService{
		joiner:   cfg.Joiner,
		entries:  make(map[model.Ref]*membershipEntry),
		inflight: make(map[inflightKey]struct{}),
		log:      log,
	}
}

// JoinResult reports the outcome of a Join call
type JoinResult struct {
	State  model.MembershipState
	Entity model.Entity
	// Skipped is true when the call was a no-op because a join was in
	// flight or had already succeeded.
	Skipped bool
}

func initialState(e *model.Entity, session model.Session) model.MembershipState {
	if id, ok := session.UserID(); ok && e.HasParticipant(id) {
		return model.MembershipJoined
	}
	return model.MembershipNotJoined
}

// Track starts tracking an entity on first view and refreshes its data on
// later views. A joined user found in the participant list moves the state
// to joined; a join in flight is left alone. A record without a participant
// list keeps the list tracked from an earlier detail load.
func (s *MembershipService) Track(entity model.Entity, session model.Session) model.MembershipState {
	userID, _ := session.UserID()
	ref := entity.Ref()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[ref]
	if !ok || entry.userID != userID {
		state := initialState(&entity, session)
		if _, busy := s.inflight[inflightKey{ref, userID}]; busy {
			state = model.MembershipJoining
		}
		s.entries[ref] = &membershipEntry{
			entity: entity.Clone(),
			userID: userID,
			state:  state,
		}
		return state
	}
	if entry.state == model.MembershipJoining {
		return entry.state
	}
	participants := entry.entity.Participants
	entry.entity = entity.Clone()
	if entry.entity.Participants == nil {
		entry.entity.Participants = participants
	}
	if initialState(&entity, session) == model.MembershipJoined {
		entry.state = model.MembershipJoined
		entry.message = ""
	}
	return entry.state
}

// Sync drops every tracked entity that is not in visible. Entities with a
// join in flight are kept until the request settles.
func (s *MembershipService) Sync(visible []model.Ref) {
	keep := make(map[model.Ref]struct{}, len(visible))
	for _, ref := range visible {
		keep[ref] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ref := range s.entries {
		if _, ok := keep[ref]; !ok && s.entries[ref].state != model.MembershipJoining {
			delete(s.entries, ref)
		}
	}
}

// Reset drops all state; called when the session ends. Requests still in
// flight keep blocking a second join for the same user until they settle.
func (s *MembershipService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

// State returns the tracked state, not_joined for untracked entities
func (s *MembershipService) State(ref model.Ref) model.MembershipState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[ref]; ok {
		return entry.state
	}
	return model.MembershipNotJoined
}

// Entity returns the tracked copy of an entity
func (s *MembershipService) Entity(ref model.Ref) (model.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[ref]
	if !ok {
		return model.Entity{}, false
	}
	return entry.entity.Clone(), true
}

// FailureMessage returns the message of the last failed join, if any
func (s *MembershipService) FailureMessage(ref model.Ref) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[ref]; ok && entry.state == model.MembershipFailed {
		return entry.message
	}
	return ""
}

// Control returns the join button label and enablement
func (s *MembershipService) Control(ref model.Ref) model.JoinControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[ref]
	if !ok {
		return JoinControlFor(model.MembershipNotJoined, model.AccessPublic)
	}
	return JoinControlFor(entry.state, entry.entity.Access)
}

// JoinControlFor is the join button as a pure function of state and access policy
func JoinControlFor(state model.MembershipState, access model.AccessPolicy) model.JoinControl {
	private := access.IsPrivate()
	pick := func(public, applied string) string {
		if private {
			return applied
		}
		return public
	}

	switch state {
	case model.MembershipJoining:
		return model.JoinControl{Label: pick("Joining...", "Applying..."), Disabled: true}
	case model.MembershipJoined:
		return model.JoinControl{Label: pick("Joined", "Application sent"), Disabled: true}
	case model.MembershipFailed:
		return model.JoinControl{Label: pick("Retry join", "Retry application")}
	default:
		return model.JoinControl{Label: pick("Join", "Apply")}
	}
}

// Join joins (public) or applies to (private) a tracked entity.
//
// A missing session fails with an unauthenticated error before any request.
// A call while a join is in flight, or after it succeeded, is a no-op. On
// success a participant record for the user is appended; on failure the
// state becomes failed and the participant list is left unchanged.
func (s *MembershipService) Join(ctx context.Context, session model.Session, ref model.Ref) (JoinResult, error) {
	userID, ok := session.UserID()
	if !ok {
		return JoinResult{State: s.State(ref)}, model.NewUnauthenticatedError()
	}

	var (
		entry  *membershipEntry
		access model.AccessPolicy
		req    = model.JoinRequest{Action: model.JoinActionJoin}
		key    = inflightKey{ref: ref, userID: userID}
	)

	transition := Transition[*model.JoinResponse]{
		Apply: func() error {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, tracked := s.entries[ref]
			if !tracked || e.userID != userID {
				return ErrEntityNotTracked
			}
			entry = e
			if _, busy := s.inflight[key]; busy || !e.state.CanJoin() {
				return errJoinSkipped
			}
			access = e.entity.Access
			if access.IsPrivate() {
				req.Message = model.DefaultApplicationMessage
			}
			e.state = model.MembershipJoining
			e.message = ""
			s.inflight[key] = struct{}{}
			return nil
		},
		Commit: func(resp *model.JoinResponse) {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.inflight, key)
			entry = s.live(key, entry)
			appendParticipant(&entry.entity, synthesizeParticipant(resp, userID, access))
			entry.state = model.MembershipJoined
			entry.message = ""
		},
		Revert: func(err error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.inflight, key)
			entry = s.live(key, entry)
			entry.state = model.MembershipFailed
			entry.message = model.UserMessage(err, GenericJoinFailure)
			s.log.Warn("join failed",
				slog.String("entity", ref.String()),
				slog.String("error", err.Error()),
			)
		},
	}

	_, err := Optimistic(ctx, transition, func(ctx context.Context) (*model.JoinResponse, error) {
		return s.joiner.Join(ctx, session, ref, req)
	})

	if errors.Is(err, ErrEntityNotTracked) {
		return JoinResult{State: model.MembershipNotJoined}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := JoinResult{State: entry.state, Entity: entry.entity.Clone()}
	if errors.Is(err, errJoinSkipped) {
		res.Skipped = true
		return res, nil
	}
	return res, err
}

// live returns the entry currently tracked for key, or held when the entity
// was dropped or retracked for another user while the request was out.
// Callers hold s.mu.
func (s *MembershipService) live(key inflightKey, held *membershipEntry) *membershipEntry {
	if e, ok := s.entries[key.ref]; ok && e.userID == key.userID {
		return e
	}
	return held
}

// errJoinSkipped refuses a join that is in flight or already done
var errJoinSkipped = errors.New("join already in flight or done")

// synthesizeParticipant builds the record appended after a successful join,
// preferring the user data the server returned.
func synthesizeParticipant(resp *model.JoinResponse, userID model.ID, access model.AccessPolicy) model.Participant {
	p := model.Participant{UserID: userID, Name: model.PlaceholderName}
	if resp != nil && resp.User != nil {
		if !resp.User.UserID.IsZero() {
			p.UserID = resp.User.UserID
		}
		if resp.User.Name != "" {
			p.Name = resp.User.Name
		}
	}
	if access.IsPrivate() {
		p.Role, p.Status = model.RolePending, model.ParticipantStatusPending
	} else {
		p.Role, p.Status = model.RoleParticipant, model.ParticipantStatusConfirmed
	}
	return p
}

// appendParticipant adds p to a loaded participant list. Entities whose list
// was never loaded only have their reported count bumped.
func appendParticipant(e *model.Entity, p model.Participant) {
	if e.Participants == nil {
		e.ReportedParticipants++
		return
	}
	if e.HasParticipant(p.UserID) {
		return
	}
	e.Participants = append(e.Participants, p)
}
