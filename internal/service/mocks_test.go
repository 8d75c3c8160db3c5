package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forgo/gather/internal/model"
)

// ============================================================================
// Mock Backends
// ============================================================================

type mockSource struct {
	listFunc         func(ctx context.Context, session model.Session, kind model.EntityKind) ([]model.Entity, error)
	getFunc          func(ctx context.Context, session model.Session, ref model.Ref) (*model.Entity, error)
	participantsFunc func(ctx context.Context, session model.Session, ref model.Ref) ([]model.Participant, error)
}

func (m *mockSource) List(ctx context.Context, session model.Session, kind model.EntityKind) ([]model.Entity, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, session, kind)
	}
	return nil, nil
}

func (m *mockSource) Get(ctx context.Context, session model.Session, ref model.Ref) (*model.Entity, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, session, ref)
	}
	return nil, nil
}

func (m *mockSource) Participants(ctx context.Context, session model.Session, ref model.Ref) ([]model.Participant, error) {
	if m.participantsFunc != nil {
		return m.participantsFunc(ctx, session, ref)
	}
	return nil, nil
}

type mockJoiner struct {
	calls    atomic.Int32
	joinFunc func(ctx context.Context, session model.Session, ref model.Ref, req model.JoinRequest) (*model.JoinResponse, error)
}

func (m *mockJoiner) Join(ctx context.Context, session model.Session, ref model.Ref, req model.JoinRequest) (*model.JoinResponse, error) {
	m.calls.Add(1)
	if m.joinFunc != nil {
		return m.joinFunc(ctx, session, ref, req)
	}
	return &model.JoinResponse{}, nil
}

type mockRooms struct {
	administeredFunc func(ctx context.Context, session model.Session) ([]model.Entity, error)
	mineFunc         func(ctx context.Context, session model.Session) ([]model.Entity, error)
}

func (m *mockRooms) Administered(ctx context.Context, session model.Session) ([]model.Entity, error) {
	if m.administeredFunc != nil {
		return m.administeredFunc(ctx, session)
	}
	return nil, nil
}

func (m *mockRooms) Mine(ctx context.Context, session model.Session) ([]model.Entity, error) {
	if m.mineFunc != nil {
		return m.mineFunc(ctx, session)
	}
	return nil, nil
}

type mockCreator struct {
	createFunc func(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error)
}

func (m *mockCreator) Create(ctx context.Context, session model.Session, e model.Entity) (*model.Entity, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, session, e)
	}
	return &e, nil
}

type mockAuth struct {
	calls     atomic.Int32
	loginFunc func(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

func (m *mockAuth) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	m.calls.Add(1)
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &model.LoginResponse{UserID: "1"}, nil
}

type mockUsers struct {
	calls        atomic.Int32
	meFunc       func(ctx context.Context, session model.Session) (*model.UserProfile, error)
	updateFunc   func(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error)
	interestFunc func(ctx context.Context, session model.Session) ([]model.Interest, error)
}

func (m *mockUsers) Me(ctx context.Context, session model.Session) (*model.UserProfile, error) {
	m.calls.Add(1)
	if m.meFunc != nil {
		return m.meFunc(ctx, session)
	}
	return &model.UserProfile{}, nil
}

func (m *mockUsers) UpdateMe(ctx context.Context, session model.Session, patch model.ProfilePatch) (*model.UserProfile, error) {
	m.calls.Add(1)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, session, patch)
	}
	return &model.UserProfile{}, nil
}

func (m *mockUsers) Interests(ctx context.Context, session model.Session) ([]model.Interest, error) {
	if m.interestFunc != nil {
		return m.interestFunc(ctx, session)
	}
	return nil, nil
}

// memoryStore is an in-memory SessionStore
type memoryStore struct {
	mu      sync.Mutex
	session model.Session
	saveErr error
}

func (s *memoryStore) Session() (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *memoryStore) SaveSession(session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = session
	return nil
}

func (s *memoryStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = model.NoSession()
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func intPtr(n int) *int { return &n }

func dayPtr(y, m, d int) *model.Day {
	day := model.Day{Year: y, Month: time.Month(m), Day: d}
	return &day
}
