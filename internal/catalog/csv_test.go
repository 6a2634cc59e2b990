package catalog

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVBasic(t *testing.T) {
	games := []Game{
		{ID: 1, Title: "Doom Eternal", Platform: strPtr("PS4"), Price: floatPtr(21.26)},
	}

	got := ToCSV(games)
	assert.Equal(t, "id,title,platform,price\n1,Doom Eternal,PS4,21.26", got)
}

func TestToCSVQuotesOnlyWhenNeeded(t *testing.T) {
	games := []Game{
		{ID: 1, Title: `Ratchet & Clank: Rift Apart`},
		{ID: 2, Title: `Hello, World`},
		{ID: 3, Title: `The "Best" Game`},
		{ID: 4, Title: "Line\nBreak"},
	}

	got := ToCSV(games)
	lines := strings.SplitN(got, "\n", 3)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "id,title", lines[0])
	// No comma, quote or newline: stays bare.
	assert.Equal(t, "1,Ratchet & Clank: Rift Apart", lines[1])

	assert.Contains(t, got, `2,"Hello, World"`)
	assert.Contains(t, got, `3,"The ""Best"" Game"`)
	assert.Contains(t, got, "4,\"Line\nBreak\"")
}

func TestToCSVAbsentValuesAreEmptyFields(t *testing.T) {
	games := []Game{
		{ID: 1, Title: "A", Platform: strPtr("PC"), Price: floatPtr(5)},
		{ID: 2, Title: "B"},
	}

	got := ToCSV(games)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2,B,,", lines[2])
}

func TestToCSVRoundTripsThroughStandardReader(t *testing.T) {
	games := []Game{
		{ID: 1, Title: `Hello, "World"`, Platform: strPtr("PS5"), Price: floatPtr(21.26)},
		{ID: 2, Title: "Multi\nLine", Platform: strPtr("PC")},
	}

	r := csv.NewReader(strings.NewReader(ToCSV(games)))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "title", "platform", "price"}, records[0])
	assert.Equal(t, []string{"1", `Hello, "World"`, "PS5", "21.26"}, records[1])
	assert.Equal(t, []string{"2", "Multi\nLine", "PC", ""}, records[2])
}

func TestToCSVEmptyBatch(t *testing.T) {
	assert.Equal(t, "", ToCSV(nil))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "games_data_2025-03-14.csv", ExportFilename(now))
}
