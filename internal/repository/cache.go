package repository

import (
	"context"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// CatalogCache holds a short-lived copy of the full listing so the public
// read path does not hit the database on every request. Implementations
// must treat a miss and an expired entry identically.
type CatalogCache interface {
	// GetListing returns (nil, nil) on a cache miss.
	GetListing(ctx context.Context) ([]domain.Game, error)

	// SetListing replaces the cached listing.
	SetListing(ctx context.Context, games []domain.Game) error

	// Invalidate drops the cached listing. Called after every mutation.
	Invalidate(ctx context.Context) error
}
