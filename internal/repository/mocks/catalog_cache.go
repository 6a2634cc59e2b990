package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// CatalogCache mocks repository.CatalogCache.
type CatalogCache struct {
	mock.Mock
}

func (m *CatalogCache) GetListing(ctx context.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	if games := args.Get(0); games != nil {
		return games.([]domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogCache) SetListing(ctx context.Context, games []domain.Game) error {
	return m.Called(ctx, games).Error(0)
}

func (m *CatalogCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
