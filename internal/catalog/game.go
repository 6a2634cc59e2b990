// Package catalog holds the client-side record set: the in-memory games
// loaded from the API, the derived column schema, sorting, and CSV export.
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Game is one loaded record. Optional fields are pointers so a key that
// the server omitted (or sent as null) is distinguishable from a zero
// value; a nil pointer means "key not seen" for column discovery.
type Game struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Platform    *string    `json:"platform"`
	Genre       *string    `json:"genre"`
	ReleaseYear *int       `json:"release_year"`
	Price       *float64   `json:"price"`
	Region      *string    `json:"region"`
	Publisher   *string    `json:"publisher"`
	Opened      *bool      `json:"opened"`
	CreatedAt   *time.Time `json:"created_at"`
}

// fieldOrder is the canonical key order a record contributes its columns
// in. The table schema is the union of keys seen across the batch, never
// a fixed list.
var fieldOrder = []string{
	"id", "title", "platform", "genre", "release_year",
	"price", "region", "publisher", "opened", "created_at",
}

// Has reports whether the record carries the key. id and title are always
// present; unknown keys are simply absent.
func (g Game) Has(key string) bool {
	switch key {
	case "id", "title":
		return true
	case "platform":
		return g.Platform != nil
	case "genre":
		return g.Genre != nil
	case "release_year":
		return g.ReleaseYear != nil
	case "price":
		return g.Price != nil
	case "region":
		return g.Region != nil
	case "publisher":
		return g.Publisher != nil
	case "opened":
		return g.Opened != nil
	case "created_at":
		return g.CreatedAt != nil
	}
	return false
}

// Value returns the display string for a key. Absent values are the empty
// string, never "null" or "undefined".
func (g Game) Value(key string) string {
	switch key {
	case "id":
		return strconv.FormatInt(g.ID, 10)
	case "title":
		return g.Title
	case "platform":
		return strVal(g.Platform)
	case "genre":
		return strVal(g.Genre)
	case "release_year":
		if g.ReleaseYear == nil {
			return ""
		}
		return strconv.Itoa(*g.ReleaseYear)
	case "price":
		if g.Price == nil {
			return ""
		}
		return strconv.FormatFloat(*g.Price, 'f', -1, 64)
	case "region":
		return strVal(g.Region)
	case "publisher":
		return strVal(g.Publisher)
	case "opened":
		if g.Opened == nil {
			return ""
		}
		return strconv.FormatBool(*g.Opened)
	case "created_at":
		if g.CreatedAt == nil {
			return ""
		}
		return g.CreatedAt.Format(time.RFC3339)
	}
	return ""
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Columns derives the table schema from a batch: the union of keys seen
// across all records, in first-seen order.
func Columns(games []Game) []string {
	seen := make(map[string]bool, len(fieldOrder))
	var cols []string
	for _, g := range games {
		for _, key := range fieldOrder {
			if !seen[key] && g.Has(key) {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// SplitPrice splits a price into dollar and two-digit-cent strings for
// decimal-aligned display. Display only; exports always use the raw value.
func SplitPrice(price float64) (dollars, cents string) {
	total := int64(math.Round(price * 100))
	return strconv.FormatInt(total/100, 10), fmt.Sprintf("%02d", total%100)
}

// Append adds a freshly created record to the end of the local set.
func Append(games []Game, g Game) []Game {
	return append(games, g)
}

// ReplaceByID swaps in the updated record at the position of its
// predecessor; order is otherwise preserved.
func ReplaceByID(games []Game, updated Game) []Game {
	out := make([]Game, len(games))
	copy(out, games)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			break
		}
	}
	return out
}

// RemoveByID filters the record with the given id out of the local set.
func RemoveByID(games []Game, id int64) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

// FindByID returns the record with the given id, or nil.
func FindByID(games []Game, id int64) *Game {
	for i := range games {
		if games[i].ID == id {
			return &games[i]
		}
	}
	return nil
}
