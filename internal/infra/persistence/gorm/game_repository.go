// Package gormpersistence implements the repository interfaces on GORM.
package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wh33les/HusbandsGames/internal/domain"
	"github.com/wh33les/HusbandsGames/internal/repository"
)

// GormGameRepository is the GORM implementation of repository.GameRepository.
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates the repository; db must not be nil.
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	if db == nil {
		panic("database connection cannot be nil for GormGameRepository")
	}
	return &GormGameRepository{db: db}
}

func (r *GormGameRepository) List(ctx context.Context, offset, limit int) ([]domain.Game, error) {
	var games []domain.Game
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list games (offset %d, limit %d): %w", offset, limit, err)
	}
	return games, nil
}

func (r *GormGameRepository) ListAll(ctx context.Context) ([]domain.Game, error) {
	var games []domain.Game
	if err := r.db.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("gorm: list all games: %w", err)
	}
	return games, nil
}

func (r *GormGameRepository) FindByID(ctx context.Context, id uint) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGameNotFound
		}
		return nil, fmt.Errorf("gorm: find game by id %d: %w", id, err)
	}
	return &game, nil
}

func (r *GormGameRepository) Create(ctx context.Context, game *domain.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("gorm: create game %q: %w", game.Title, err)
	}
	return nil
}

func (r *GormGameRepository) Update(ctx context.Context, game *domain.Game) error {
	// Save writes every column, including ones reset to NULL, which is what
	// the merge semantics upstream expect.
	if err := r.db.WithContext(ctx).Save(game).Error; err != nil {
		return fmt.Errorf("gorm: update game %d: %w", game.ID, err)
	}
	return nil
}

func (r *GormGameRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Game{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete game %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrGameNotFound
	}
	return nil
}

// isDuplicateEntryError checks the common unique-constraint error strings
// of the supported drivers.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
