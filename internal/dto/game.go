// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// GameCreate carries the fields a client may supply when adding a game.
// The server assigns id and created_at itself, so neither appears here.
type GameCreate struct {
	Title       string   `json:"title" binding:"required"`
	Platform    *string  `json:"platform"`
	Genre       *string  `json:"genre"`
	ReleaseYear *int     `json:"release_year"`
	Price       *float64 `json:"price"`
	Region      *string  `json:"region"`
	Publisher   *string  `json:"publisher"`
	Opened      *bool    `json:"opened"`
}

// GameUpdate is a partial update: only non-nil fields are applied.
type GameUpdate struct {
	Title       *string  `json:"title"`
	Platform    *string  `json:"platform"`
	Genre       *string  `json:"genre"`
	ReleaseYear *int     `json:"release_year"`
	Price       *float64 `json:"price"`
	Region      *string  `json:"region"`
	Publisher   *string  `json:"publisher"`
	Opened      *bool    `json:"opened"`
}

// GameView is the listing representation. Field order matters: the
// frontend table shows keys in serialization order, so the descriptive
// columns come first and the database bookkeeping last.
type GameView struct {
	Title       string    `json:"title"`
	Platform    *string   `json:"platform"`
	Genre       *string   `json:"genre"`
	ReleaseYear *int      `json:"release_year"`
	Price       *float64  `json:"price"`
	Region      *string   `json:"region"`
	Publisher   *string   `json:"publisher"`
	Opened      bool      `json:"opened"`
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewGameView reorders a Game for listing responses.
func NewGameView(g domain.Game) GameView {
	return GameView{
		Title:       g.Title,
		Platform:    g.Platform,
		Genre:       g.Genre,
		ReleaseYear: g.ReleaseYear,
		Price:       g.Price,
		Region:      g.Region,
		Publisher:   g.Publisher,
		Opened:      g.Opened,
		ID:          g.ID,
		CreatedAt:   g.CreatedAt,
	}
}

// NewGameViews converts a listing batch.
func NewGameViews(games []domain.Game) []GameView {
	views := make([]GameView, 0, len(games))
	for _, g := range games {
		views = append(views, NewGameView(g))
	}
	return views
}
