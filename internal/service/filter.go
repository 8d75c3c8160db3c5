package service

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/forgo/gather/internal/model"
)

// FilterEntities returns the entities matching c, preserving input order.
// It has no side effects and may be re-run on every keystroke.
//
// City and name match case-insensitively as substrings of the trimmed query,
// the date matches the start's calendar day in loc, and the age matches when
// the entity's restriction does not exceed it. Empty criteria match all.
func FilterEntities(entities []model.Entity, c model.FilterCriteria, loc *time.Location) []model.Entity {
	m := newMatcher(c, loc)
	out := make([]model.Entity, 0, len(entities))
	for i := range entities {
		if m.match(&entities[i]) {
			out = append(out, entities[i])
		}
	}
	return out
}

type matcher struct {
	fold   cases.Caser
	city   string
	name   string
	date   *model.Day
	maxAge *int
	loc    *time.Location
}

func newMatcher(c model.FilterCriteria, loc *time.Location) *matcher {
	fold := cases.Fold()
	if loc == nil {
		loc = time.Local
	}
	return &matcher{
		fold:   fold,
		city:   fold.String(strings.TrimSpace(c.City)),
		name:   fold.String(strings.TrimSpace(c.Name)),
		date:   c.Date,
		maxAge: c.MaxAge,
		loc:    loc,
	}
}

func (m *matcher) match(e *model.Entity) bool {
	if m.city != "" && !strings.Contains(m.fold.String(e.Location.City), m.city) {
		return false
	}
	if m.name != "" && !strings.Contains(m.fold.String(e.Name), m.name) {
		return false
	}
	if m.date != nil && !m.date.Contains(e.StartTime, m.loc) {
		return false
	}
	if m.maxAge != nil && e.AgeRestriction > 0 && e.AgeRestriction > *m.maxAge {
		return false
	}
	return true
}

// ParseCriteria builds criteria from raw form input. A malformed date or age
// is a validation failure.
func ParseCriteria(city, name, date, age string) (model.FilterCriteria, error) {
	c := model.FilterCriteria{City: city, Name: name}
	var errors []model.FieldError

	if date = strings.TrimSpace(date); date != "" {
		day, err := model.ParseDay(date)
		if err != nil {
			errors = append(errors, model.FieldError{Field: "date", Message: err.Error()})
		} else {
			c.Date = &day
		}
	}
	if age = strings.TrimSpace(age); age != "" {
		n, err := strconv.Atoi(age)
		switch {
		case err != nil:
			errors = append(errors, model.FieldError{Field: "age", Message: "age must be a whole number"})
		case n < 0:
			errors = append(errors, model.FieldError{Field: "age", Message: "age must not be negative"})
		default:
			c.MaxAge = &n
		}
	}

	if len(errors) > 0 {
		return model.FilterCriteria{}, model.NewValidationError(errors)
	}
	return c, nil
}

// maxCachedCriteria bounds the memo table; it is cleared when full
const maxCachedCriteria = 64

// FilterCache memoizes FilterEntities on (collection version, criteria).
// Results are shared between callers and must not be modified.
type FilterCache struct {
	mu       sync.Mutex
	loc      *time.Location
	version  uint64
	entities []model.Entity
	results  map[model.CriteriaKey][]model.Entity
}

// NewFilterCache creates an empty cache evaluating dates in loc
func NewFilterCache(loc *time.Location) *FilterCache {
	return &FilterCache{loc: loc, results: make(map[model.CriteriaKey][]model.Entity)}
}

// SetEntities replaces the collection and invalidates memoized results
func (c *FilterCache) SetEntities(entities []model.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = slices.Clone(entities)
	c.version++
	clear(c.results)
}

// Entities returns the unfiltered collection
func (c *FilterCache) Entities() []model.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entities)
}

// Version increments on every SetEntities
func (c *FilterCache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Apply returns the filtered collection, computing it at most once per
// collection version and criteria.
func (c *FilterCache) Apply(criteria model.FilterCriteria) []model.Entity {
	key := criteria.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	if res, ok := c.results[key]; ok {
		return res
	}
	if len(c.results) >= maxCachedCriteria {
		clear(c.results)
	}
	res := FilterEntities(c.entities, criteria, c.loc)
	c.results[key] = res
	return res
}
