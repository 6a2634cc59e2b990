// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// GameRepository mocks repository.GameRepository.
type GameRepository struct {
	mock.Mock
}

func (m *GameRepository) List(ctx context.Context, offset, limit int) ([]domain.Game, error) {
	args := m.Called(ctx, offset, limit)
	if games := args.Get(0); games != nil {
		return games.([]domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GameRepository) ListAll(ctx context.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	if games := args.Get(0); games != nil {
		return games.([]domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GameRepository) FindByID(ctx context.Context, id uint) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if game := args.Get(0); game != nil {
		return game.(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *GameRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
