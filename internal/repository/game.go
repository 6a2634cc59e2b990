// Package repository declares the storage interfaces the services depend on.
package repository

import (
	"context"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// GameRepository stores and retrieves catalog entries.
type GameRepository interface {
	// List returns games ordered by id, honoring offset/limit pagination.
	List(ctx context.Context, offset, limit int) ([]domain.Game, error)

	// ListAll returns the whole catalog ordered by id.
	ListAll(ctx context.Context) ([]domain.Game, error)

	// FindByID returns ErrGameNotFound when no such game exists.
	FindByID(ctx context.Context, id uint) (*domain.Game, error)

	// Create inserts a new game and fills in its id and created_at.
	Create(ctx context.Context, game *domain.Game) error

	// Update persists all fields of an existing game.
	Update(ctx context.Context, game *domain.Game) error

	// Delete removes a game; ErrGameNotFound when nothing was deleted.
	Delete(ctx context.Context, id uint) error
}
