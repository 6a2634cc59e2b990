package repository

import (
	"context"

	"github.com/wh33les/HusbandsGames/internal/domain"
)

// UserRepository stores admin accounts.
type UserRepository interface {
	// FindByUsername returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save creates the user when its ID is zero, updates it otherwise.
	Save(ctx context.Context, user *domain.User) error
}
