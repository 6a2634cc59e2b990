package catalog

import (
	"sort"
	"strings"
)

// Direction of a column sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is the current sort state of the table. The zero value means
// "no sort": records stay in fetch order.
type Order struct {
	Key       string
	Direction Direction
}

// IsZero reports whether the table is unsorted.
func (o Order) IsZero() bool {
	return o.Key == ""
}

// Next is the header-click state machine: a new column starts ascending,
// clicking the ascending column flips to descending, and clicking the
// descending column goes back to ascending. There is no path back to
// "no sort".
func (o Order) Next(clicked string) Order {
	if o.Key == clicked && o.Direction == Asc {
		return Order{Key: clicked, Direction: Desc}
	}
	return Order{Key: clicked, Direction: Asc}
}

// Sort returns a new ordering of the records under the given key and
// direction; the input slice is untouched. The sort is stable, so equal
// values keep their fetch order. Records missing the key sort before
// present values ascending (and therefore after them descending).
func Sort(games []Game, key string, dir Direction) []Game {
	out := make([]Game, len(games))
	copy(out, games)
	if key == "" {
		return out
	}

	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Apply sorts under an Order; the zero Order returns fetch order.
func Apply(games []Game, o Order) []Game {
	if o.IsZero() {
		return Sort(games, "", Asc)
	}
	return Sort(games, o.Key, o.Direction)
}

// lessFunc picks the comparison for a key: numeric for numbers, temporal
// for timestamps, boolean for opened, lexical otherwise.
func lessFunc(key string) func(a, b Game) bool {
	switch key {
	case "id":
		return func(a, b Game) bool { return a.ID < b.ID }
	case "release_year":
		return func(a, b Game) bool {
			return lessFloatPtr(intPtrToFloat(a.ReleaseYear), intPtrToFloat(b.ReleaseYear))
		}
	case "price":
		return func(a, b Game) bool { return lessFloatPtr(a.Price, b.Price) }
	case "opened":
		return func(a, b Game) bool {
			return boolRank(a.Opened) < boolRank(b.Opened)
		}
	case "created_at":
		return func(a, b Game) bool {
			switch {
			case a.CreatedAt == nil:
				return b.CreatedAt != nil
			case b.CreatedAt == nil:
				return false
			default:
				return a.CreatedAt.Before(*b.CreatedAt)
			}
		}
	default:
		return func(a, b Game) bool {
			return strings.Compare(a.Value(key), b.Value(key)) < 0
		}
	}
}

func intPtrToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}

func lessFloatPtr(a, b *float64) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

// boolRank orders absent < false < true.
func boolRank(p *bool) int {
	switch {
	case p == nil:
		return 0
	case !*p:
		return 1
	default:
		return 2
	}
}
