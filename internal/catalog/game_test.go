package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsUnionFirstSeenOrder(t *testing.T) {
	games := []Game{
		{ID: 1, Title: "Doom Eternal", Platform: strPtr("PS4")},
		{ID: 2, Title: "Hades", Price: floatPtr(9.99)},
		{ID: 3, Title: "Okami", Genre: strPtr("Adventure"), Platform: strPtr("PS2")},
	}

	cols := Columns(games)
	assert.Equal(t, []string{"id", "title", "platform", "genre", "price"}, cols)
}

func TestColumnsEmptyBatch(t *testing.T) {
	assert.Empty(t, Columns(nil))
	assert.Empty(t, Columns([]Game{}))
}

func TestColumnsSingleRecordSkipsAbsentKeys(t *testing.T) {
	games := []Game{{ID: 7, Title: "Ico"}}
	assert.Equal(t, []string{"id", "title"}, Columns(games))
}

func TestValueAbsentIsEmptyString(t *testing.T) {
	g := Game{ID: 4, Title: "Rez"}

	assert.Equal(t, "4", g.Value("id"))
	assert.Equal(t, "Rez", g.Value("title"))
	assert.Equal(t, "", g.Value("platform"))
	assert.Equal(t, "", g.Value("price"))
	assert.Equal(t, "", g.Value("opened"))
	assert.Equal(t, "", g.Value("created_at"))
	assert.Equal(t, "", g.Value("no_such_key"))
}

func TestValueFormatting(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	g := Game{
		ID:          1,
		Title:       "Doom Eternal",
		ReleaseYear: intPtr(2020),
		Price:       floatPtr(21.26),
		Opened:      boolPtr(false),
		CreatedAt:   &created,
	}

	assert.Equal(t, "2020", g.Value("release_year"))
	assert.Equal(t, "21.26", g.Value("price"))
	assert.Equal(t, "false", g.Value("opened"))
	assert.Equal(t, "2025-03-14T09:26:53Z", g.Value("created_at"))
}

func TestSplitPrice(t *testing.T) {
	dollars, cents := SplitPrice(21.26)
	assert.Equal(t, "21", dollars)
	assert.Equal(t, "26", cents)

	dollars, cents = SplitPrice(5)
	assert.Equal(t, "5", dollars)
	assert.Equal(t, "00", cents)

	dollars, cents = SplitPrice(0.05)
	assert.Equal(t, "0", dollars)
	assert.Equal(t, "05", cents)
}

func TestReplaceByIDPreservesPosition(t *testing.T) {
	games := []Game{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
	}

	out := ReplaceByID(games, Game{ID: 2, Title: "B2"})
	require.Len(t, out, 3)
	assert.Equal(t, "B2", out[1].Title)
	assert.Equal(t, "B", games[1].Title)
}

func TestRemoveByID(t *testing.T) {
	games := []Game{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
	}

	out := RemoveByID(games, 1)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	// Unknown id is a no-op.
	assert.Len(t, RemoveByID(games, 99), 2)
}

func TestFindByID(t *testing.T) {
	games := []Game{{ID: 5, Title: "Gris"}}

	g := FindByID(games, 5)
	require.NotNil(t, g)
	assert.Equal(t, "Gris", g.Title)

	assert.Nil(t, FindByID(games, 6))
}
