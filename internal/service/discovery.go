package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/gather/internal/fallback"
	"github.com/forgo/gather/internal/model"
)

// EntitySource loads events and groups from the backends
type EntitySource interface {
	List(ctx context.Context, session model.Session, kind model.EntityKind) ([]model.Entity, error)
	Get(ctx context.Context, session model.Session, ref model.Ref) (*model.Entity, error)
	Participants(ctx context.Context, session model.Session, ref model.Ref) ([]model.Participant, error)
}

// DiscoveryService loads collections and details, degrading to the embedded
// fallback data when a backend is unreachable.
type DiscoveryService struct {
	source         EntitySource
	membership     *MembershipService
	loc            *time.Location
	mobileMaxWidth int
	log            *slog.Logger
}

// DiscoveryServiceConfig holds configuration for the discovery service
type DiscoveryServiceConfig struct {
	Source         EntitySource
	Membership     *MembershipService
	Location       *time.Location
	MobileMaxWidth int
	Logger         *slog.Logger
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(cfg DiscoveryServiceConfig) *DiscoveryService {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	membership := cfg.Membership
	if membership == nil {
		membership = NewMembershipService(MembershipServiceConfig{Logger: log})
	}
	return &DiscoveryService{
		source:         cfg.Source,
		membership:     membership,
		loc:            loc,
		mobileMaxWidth: cfg.MobileMaxWidth,
		log:            log,
	}
}

// Membership returns the membership machine shared by every page
func (s *DiscoveryService) Membership() *MembershipService {
	return s.membership
}

// Collection is the result of a list load
type Collection struct {
	Kind     model.EntityKind
	Entities []model.Entity
	// Degraded is set when Entities came from the fallback data
	Degraded bool
	Cause    error
}

// Load fetches every entity of kind. On failure the fallback list for the
// kind is returned instead, flagged as degraded. An empty list is not a
// failure.
func (s *DiscoveryService) Load(ctx context.Context, session model.Session, kind model.EntityKind) Collection {
	entities, err := s.source.List(ctx, session, kind)
	if err != nil {
		s.log.Warn("list load failed, using fallback data",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return Collection{Kind: kind, Entities: fallback.List(kind), Degraded: true, Cause: err}
	}
	return Collection{Kind: kind, Entities: model.WithKind(kind, entities)}
}

// Detail is one entity with its participants and the join control
type Detail struct {
	Entity   model.Entity
	State    model.MembershipState
	Control  model.JoinControl
	Degraded bool
}

// Detail fetches an entity and its participants concurrently. The entity
// falls back to the fallback record; participants fall back to the list
// embedded in the entity and then to the fallback participants. The result
// is tracked by the membership machine.
func (s *DiscoveryService) Detail(ctx context.Context, session model.Session, ref model.Ref) (Detail, error) {
	var (
		entity       *model.Entity
		participants []model.Participant
		entityErr    error
		partsErr     error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entity, entityErr = s.source.Get(gctx, session, ref)
		return nil
	})
	g.Go(func() error {
		participants, partsErr = s.source.Participants(gctx, session, ref)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	var d Detail
	if entityErr != nil || entity == nil {
		if entityErr != nil {
			s.log.Warn("detail load failed, using fallback data",
				slog.String("entity", ref.String()),
				slog.String("error", entityErr.Error()),
			)
		}
		fb := fallback.Entity(ref)
		entity = &fb
		d.Degraded = true
	}
	entity.Kind = ref.Kind

	switch {
	case partsErr == nil && participants != nil:
		entity.Participants = participants
	case entity.Participants != nil:
		// Embedded list from the detail record
	default:
		if partsErr != nil {
			s.log.Warn("participants load failed, using fallback data",
				slog.String("entity", ref.String()),
				slog.String("error", partsErr.Error()),
			)
		}
		entity.Participants = fallback.Participants(ref)
		d.Degraded = true
	}

	s.membership.Track(*entity, session)
	tracked, _ := s.membership.Entity(ref)
	d.Entity = tracked
	d.State = s.membership.State(ref)
	d.Control = s.membership.Control(ref)
	return d, nil
}

// Page is one discovery page: a collection filtered by criteria, shown
// through a view controller, with join state per displayed entity.
type Page struct {
	svc     *DiscoveryService
	kind    model.EntityKind
	session model.Session
	cache   *FilterCache
	view    *ViewController

	mu       sync.Mutex
	criteria model.FilterCriteria
	degraded bool
	cause    error
}

// Open loads a collection and starts a page for it at the given viewport
// width, with empty criteria.
func (s *DiscoveryService) Open(ctx context.Context, session model.Session, kind model.EntityKind, width int) *Page {
	p := &Page{
		svc:     s,
		kind:    kind,
		session: session,
		cache:   NewFilterCache(s.loc),
		view:    NewViewController(ViewControllerConfig{Width: width, MobileMaxWidth: s.mobileMaxWidth}),
	}
	col := s.Load(ctx, session, kind)
	p.degraded, p.cause = col.Degraded, col.Cause
	p.cache.SetEntities(col.Entities)
	p.refresh()
	return p
}

// Kind returns the entity kind the page shows
func (p *Page) Kind() model.EntityKind { return p.kind }

// View returns the page's view controller
func (p *Page) View() *ViewController { return p.view }

// Degraded reports whether the collection came from the fallback data
func (p *Page) Degraded() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded, p.cause
}

// Criteria returns the active criteria
func (p *Page) Criteria() model.FilterCriteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteria
}

// SetCriteria filters the collection and displays the result
func (p *Page) SetCriteria(c model.FilterCriteria) []model.Entity {
	p.mu.Lock()
	p.criteria = c
	p.mu.Unlock()
	return p.refresh()
}

// Displayed returns the filtered collection
func (p *Page) Displayed() []model.Entity {
	return p.view.Entities()
}

// All returns the unfiltered collection
func (p *Page) All() []model.Entity {
	return p.cache.Entities()
}

func (p *Page) refresh() []model.Entity {
	shown := p.cache.Apply(p.Criteria())
	p.view.SetCollection(shown)

	refs := make([]model.Ref, len(shown))
	for i := range shown {
		refs[i] = shown[i].Ref()
		p.svc.membership.Track(shown[i], p.session)
	}
	p.svc.membership.Sync(refs)
	return slices.Clone(shown)
}

// Select selects a displayed entity and loads its detail
func (p *Page) Select(ctx context.Context, id model.ID) (Detail, error) {
	if err := p.view.Select(id); err != nil {
		return Detail{}, err
	}
	return p.svc.Detail(ctx, p.session, model.Ref{Kind: p.kind, ID: id})
}

// Join joins a displayed entity. On success the updated entity replaces
// the collection record and the page is refiltered.
func (p *Page) Join(ctx context.Context, id model.ID) (JoinResult, error) {
	ref := model.Ref{Kind: p.kind, ID: id}
	res, err := p.svc.membership.Join(ctx, p.session, ref)
	if err != nil || res.Skipped {
		return res, err
	}

	all := p.cache.Entities()
	if i := slices.IndexFunc(all, func(e model.Entity) bool { return e.ID == id }); i >= 0 {
		all[i] = res.Entity.Clone()
		p.cache.SetEntities(all)
		p.refresh()
	}
	return res, nil
}
