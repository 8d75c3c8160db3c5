package service

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/fallback"
	"github.com/forgo/gather/internal/model"
)

func sampleEntities() []model.Entity {
	return []model.Entity{
		{Kind: model.KindEvent, ID: "1", Name: "Концерт в парке", Location: model.Location{City: "Москва"},
			StartTime: time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC)},
		{Kind: model.KindEvent, ID: "2", Name: "IT-митап", Location: model.Location{City: "Москва"},
			StartTime: time.Date(2025, 11, 21, 18, 0, 0, 0, time.UTC), AgeRestriction: 18},
		{Kind: model.KindEvent, ID: "3", Name: "Go meetup", Location: model.Location{City: "Saint Petersburg"},
			StartTime: time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC), AgeRestriction: 12},
		{Kind: model.KindEvent, ID: "4", Name: "No date"},
	}
}

func ids(entities []model.Entity) []model.ID {
	out := make([]model.ID, len(entities))
	for i := range entities {
		out[i] = entities[i].ID
	}
	return out
}

// ============================================================================
// FilterEntities Tests
// ============================================================================

func TestFilterEntities_Matching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     []model.ID
	}{
		{"city is case-insensitive", model.FilterCriteria{City: "москва"}, []model.ID{"1", "2"}},
		{"city substring", model.FilterCriteria{City: "peter"}, []model.ID{"3"}},
		{"city trimmed", model.FilterCriteria{City: "  МОСКВА "}, []model.ID{"1", "2"}},
		{"name substring", model.FilterCriteria{Name: "MEETUP"}, []model.ID{"3"}},
		{"date matches the start day", model.FilterCriteria{Date: dayPtr(2025, 11, 21)}, []model.ID{"2", "3"}},
		{"date excludes entities without start", model.FilterCriteria{Date: dayPtr(2025, 1, 1)}, []model.ID{}},
		{"age includes unrestricted", model.FilterCriteria{MaxAge: intPtr(10)}, []model.ID{"1", "4"}},
		{"age at the restriction", model.FilterCriteria{MaxAge: intPtr(12)}, []model.ID{"1", "3", "4"}},
		{"all fields combine", model.FilterCriteria{City: "Москва", Name: "IT", Date: dayPtr(2025, 11, 21), MaxAge: intPtr(18)}, []model.ID{"2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterEntities(sampleEntities(), tt.criteria, time.UTC)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterEntities_DateUsesViewerZone(t *testing.T) {
	t.Parallel()

	// 2025-11-21T22:00Z is already the 22nd in Moscow (UTC+3)
	moscow := time.FixedZone("MSK", 3*60*60)
	entities := []model.Entity{{ID: "late", StartTime: time.Date(2025, 11, 21, 22, 0, 0, 0, time.UTC)}}

	assert.Empty(t, FilterEntities(entities, model.FilterCriteria{Date: dayPtr(2025, 11, 21)}, moscow))
	assert.Len(t, FilterEntities(entities, model.FilterCriteria{Date: dayPtr(2025, 11, 22)}, moscow), 1)
}

func TestFilterEntities_ResultIsOrderedSubsequence(t *testing.T) {
	t.Parallel()

	entities := sampleEntities()
	for _, c := range []model.FilterCriteria{
		{City: "а"},
		{Name: "t"},
		{MaxAge: intPtr(15)},
		{Date: dayPtr(2025, 11, 21)},
	} {
		got := FilterEntities(entities, c, time.UTC)
		last := -1
		for _, e := range got {
			i := slices.IndexFunc(entities, func(x model.Entity) bool { return x.ID == e.ID })
			require.GreaterOrEqual(t, i, 0, "result contains an entity not in the input")
			assert.Greater(t, i, last, "result order differs from input order")
			last = i
		}
	}
}

func TestFilterEntities_EmptyCriteriaIsIdentity(t *testing.T) {
	t.Parallel()

	entities := sampleEntities()
	got := FilterEntities(entities, model.FilterCriteria{}, time.UTC)
	if diff := cmp.Diff(entities, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty criteria changed the collection (-want +got):\n%s", diff)
	}
}

func TestFilterEntities_Idempotent(t *testing.T) {
	t.Parallel()

	c := model.FilterCriteria{City: "москва", MaxAge: intPtr(18)}
	once := FilterEntities(sampleEntities(), c, time.UTC)
	twice := FilterEntities(once, c, time.UTC)
	if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("filtering twice differs (-once +twice):\n%s", diff)
	}
}

func TestFilterEntities_AgeScenarioOnFallbackEvents(t *testing.T) {
	t.Parallel()

	events := fallback.Events()
	c := model.FilterCriteria{City: "Москва", Date: dayPtr(2025, 11, 21), MaxAge: intPtr(16)}

	assert.Empty(t, FilterEntities(events, c, time.UTC))

	c.MaxAge = intPtr(18)
	got := FilterEntities(events, c, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "IT-митап", got[0].Name)
}

// ============================================================================
// ParseCriteria Tests
// ============================================================================

func TestParseCriteria_Valid(t *testing.T) {
	t.Parallel()

	c, err := ParseCriteria("Москва", "", "2025-11-21", "18")
	require.NoError(t, err)
	assert.Equal(t, "Москва", c.City)
	assert.Equal(t, dayPtr(2025, 11, 21), c.Date)
	assert.Equal(t, intPtr(18), c.MaxAge)
}

func TestParseCriteria_BlankOptionalFields(t *testing.T) {
	t.Parallel()

	c, err := ParseCriteria("", "", " ", "")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestParseCriteria_MalformedInputIsValidationFailure(t *testing.T) {
	t.Parallel()

	_, err := ParseCriteria("", "", "21.11.2025", "-3")
	require.ErrorIs(t, err, model.ErrValidation)

	var merr *model.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Fields, 2)
	assert.Equal(t, "date", merr.Fields[0].Field)
	assert.Equal(t, "age", merr.Fields[1].Field)
}

// ============================================================================
// FilterCache Tests
// ============================================================================

func TestFilterCache_MemoizesUntilCollectionChanges(t *testing.T) {
	t.Parallel()

	cache := NewFilterCache(time.UTC)
	cache.SetEntities(sampleEntities())
	c := model.FilterCriteria{City: "Москва"}

	first := cache.Apply(c)
	second := cache.Apply(c)
	require.Len(t, first, 2)
	assert.Same(t, &first[0], &second[0])

	v := cache.Version()
	cache.SetEntities(sampleEntities()[:1])
	assert.Equal(t, v+1, cache.Version())
	assert.Equal(t, []model.ID{"1"}, ids(cache.Apply(c)))
}

func TestFilterCache_SetEntitiesCopiesInput(t *testing.T) {
	t.Parallel()

	in := sampleEntities()
	cache := NewFilterCache(time.UTC)
	cache.SetEntities(in)
	in[0].Name = "changed"

	assert.Equal(t, "Концерт в парке", cache.Entities()[0].Name)
}
