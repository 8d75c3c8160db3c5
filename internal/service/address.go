package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/forgo/gather/internal/model"
)

// PlaceSearcher resolves text and coordinates against a place-search service
type PlaceSearcher interface {
	Search(ctx context.Context, text string) ([]model.Place, error)
	Reverse(ctx context.Context, lat, lon float64) (model.Place, error)
}

const (
	// DefaultAddressDebounce is the delay between the last keystroke and the search
	DefaultAddressDebounce = 350 * time.Millisecond
	// NoAddressDebounce searches on every keystroke
	NoAddressDebounce time.Duration = -1
)

// AddressLookupConfig holds configuration for an address lookup
type AddressLookupConfig struct {
	Searcher PlaceSearcher
	// Debounce defaults to DefaultAddressDebounce when zero; a negative
	// value turns it off.
	Debounce time.Duration
	// OnSelect receives the place chosen for the enclosing form
	OnSelect func(model.Place)
	Logger   *slog.Logger
}

// AddressLookup debounces free-text address input into place suggestions.
// Only the most recent input's response is ever applied.
type AddressLookup struct {
	searcher PlaceSearcher
	debounce time.Duration
	onSelect func(model.Place)
	log      *slog.Logger
	task     LatestTask

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	text        string
	suggestions []model.Place
	loading     bool
	err         error
	closed      bool
}

// NewAddressLookup creates an address lookup
func NewAddressLookup(cfg AddressLookupConfig) *AddressLookup {
	debounce := cfg.Debounce
	switch {
	case debounce == 0:
		debounce = DefaultAddressDebounce
	case debounce < 0:
		debounce = 0
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AddressLookup{
		searcher: cfg.Searcher,
		debounce: debounce,
		onSelect: cfg.OnSelect,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Input records new text. Empty text clears the suggestions without a
// request; anything else schedules a debounced search that supersedes any
// pending one.
func (a *AddressLookup) Input(text string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.text = text
	query := strings.TrimSpace(text)
	a.loading = query != ""
	a.mu.Unlock()

	if query == "" {
		a.task.Cancel()
		a.mu.Lock()
		a.suggestions = nil
		a.err = nil
		a.mu.Unlock()
		return
	}

	a.task.Schedule(a.ctx, a.debounce, func(ctx context.Context) func() {
		places, err := a.searcher.Search(ctx, query)
		if err != nil && ctx.Err() == nil {
			a.log.Warn("address search failed", slog.String("query", query), slog.String("error", err.Error()))
		}
		return func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.loading = false
			a.suggestions, a.err = places, err
			if err != nil {
				a.suggestions = nil
			}
		}
	})
}

// Text returns the current input text
func (a *AddressLookup) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text
}

// Suggestions returns the places found for the latest input
func (a *AddressLookup) Suggestions() []model.Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.suggestions)
}

// Loading reports whether a search for the latest input is pending
func (a *AddressLookup) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Err returns the failure of the latest applied search, if any
func (a *AddressLookup) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Select emits place to the enclosing form and clears the suggestions
func (a *AddressLookup) Select(place model.Place) model.Place {
	a.task.Cancel()

	a.mu.Lock()
	a.text = place.Address
	a.suggestions = nil
	a.loading = false
	a.err = nil
	onSelect := a.onSelect
	a.mu.Unlock()

	if onSelect != nil {
		onSelect(place)
	}
	return place
}

// SelectIndex selects the i-th current suggestion
func (a *AddressLookup) SelectIndex(i int) (model.Place, error) {
	a.mu.Lock()
	if i < 0 || i >= len(a.suggestions) {
		a.mu.Unlock()
		return model.Place{}, ErrNoSuchSuggestion
	}
	place := a.suggestions[i]
	a.mu.Unlock()
	return a.Select(place), nil
}

// UseLocation reverse-looks-up coordinates once and selects the result.
// When the lookup fails the address falls back to a "lat, lon" literal.
func (a *AddressLookup) UseLocation(ctx context.Context, lat, lon float64) (model.Place, error) {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return model.Place{}, ErrLookupClosed
	}

	a.task.Cancel()
	place, err := a.searcher.Reverse(ctx, lat, lon)
	if err != nil || place.Address == "" {
		if err != nil {
			a.log.Warn("reverse lookup failed", slog.String("error", err.Error()))
		}
		place = model.Place{Address: model.CoordinatesLabel(lat, lon)}
	}
	place.Latitude, place.Longitude = lat, lon
	return a.Select(place), nil
}

// Wait blocks until scheduled searches have settled
func (a *AddressLookup) Wait() {
	a.task.Wait()
}

// Close cancels pending searches; later input is ignored
func (a *AddressLookup) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.task.Cancel()
	a.cancel()
	a.task.Wait()
}
