package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gather/internal/model"
)

func TestEvents_FourRecords(t *testing.T) {
	t.Parallel()

	events := Events()
	require.Len(t, events, 4)
	assert.Equal(t, model.KindEvent, events[0].Kind)
	assert.Equal(t, "IT-митап", events[1].Name)
	assert.Equal(t, 18, events[1].AgeRestriction)
	assert.Equal(t, model.ID("4"), events[3].ID)
}

func TestEvents_ReturnsCopies(t *testing.T) {
	t.Parallel()

	first := Events()
	first[0].Name = "changed"

	assert.Equal(t, "Концерт в парке", Events()[0].Name)
}

func TestGroups_KindStamped(t *testing.T) {
	t.Parallel()

	groups := Groups()
	require.NotEmpty(t, groups)
	assert.Equal(t, model.KindGroup, groups[0].Kind)
	assert.Equal(t, "Пример группы", groups[0].Name)
}

func TestEntity_PrefersListRecord(t *testing.T) {
	t.Parallel()

	e := Entity(model.Ref{Kind: model.KindEvent, ID: "3"})
	assert.Equal(t, "Кинопоказ", e.Name)

	g := Entity(model.Ref{Kind: model.KindGroup, ID: "77"})
	assert.Equal(t, model.ID("77"), g.ID)
	assert.Equal(t, model.KindGroup, g.Kind)
}

func TestParticipants_GroupMembers(t *testing.T) {
	t.Parallel()

	members := Participants(model.Ref{Kind: model.KindGroup, ID: "1"})
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "David"}, names)

	assert.NotEmpty(t, Participants(model.Ref{Kind: model.KindEvent, ID: "1"}))
}
