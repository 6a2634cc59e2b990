package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wh33les/HusbandsGames/internal/domain"
	gormpersistence "github.com/wh33les/HusbandsGames/internal/infra/persistence/gorm"
	"github.com/wh33les/HusbandsGames/internal/repository"
	"github.com/wh33les/HusbandsGames/internal/service"
)

// Migrate creates the schema and seeds the admin account when it does not
// exist yet. An existing admin keeps its stored password; rotating it
// means updating the row, not the environment.
func Migrate(db *gorm.DB, cfg *Config) error {
	if err := db.AutoMigrate(&domain.Game{}, &domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database migrated")

	userRepo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	_, err := userRepo.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	hash, err := service.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &domain.User{
		Username: cfg.AdminUsername,
		Password: hash,
		Name:     cfg.AdminName,
	}
	if err := userRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	logrus.WithField("username", cfg.AdminUsername).Info("Admin account seeded")
	return nil
}
