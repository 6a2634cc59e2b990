package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/domain"
	"github.com/wh33les/HusbandsGames/internal/repository"
	"github.com/wh33les/HusbandsGames/internal/scraper"
	"github.com/wh33les/HusbandsGames/internal/tasks"
)

// PriceRefreshHandler updates game prices from the cheapest current
// listing. A game without any listing keeps its stored price.
type PriceRefreshHandler struct {
	gameRepo    repository.GameRepository
	cache       repository.CatalogCache
	priceSource scraper.PriceSource
}

func NewPriceRefreshHandler(gameRepo repository.GameRepository, cache repository.CatalogCache, priceSource scraper.PriceSource) *PriceRefreshHandler {
	if gameRepo == nil {
		panic("GameRepository cannot be nil for PriceRefreshHandler")
	}
	if priceSource == nil {
		panic("PriceSource cannot be nil for PriceRefreshHandler")
	}
	return &PriceRefreshHandler{gameRepo: gameRepo, cache: cache, priceSource: priceSource}
}

// ProcessTask handles a single-game refresh.
func (h *PriceRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.PriceRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never succeed; do not retry.
		return fmt.Errorf("unmarshal price refresh payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx := logrus.WithFields(logrus.Fields{"task_type": t.Type(), "game_id": payload.GameID})

	game, err := h.gameRepo.FindByID(ctx, payload.GameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			// Deleted between enqueue and processing; nothing to do.
			logCtx.Info("Game gone before price refresh, skipping")
			return nil
		}
		return fmt.Errorf("load game %d: %w", payload.GameID, err)
	}

	if err := h.refreshOne(ctx, game, logCtx); err != nil {
		return err
	}
	h.invalidateCache(ctx, logCtx)
	return nil
}

// ProcessRefreshAll handles the scheduled full-catalog refresh.
func (h *PriceRefreshHandler) ProcessRefreshAll(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())
	logCtx.Info("Refreshing prices for the whole catalog")

	games, err := h.gameRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list games for price refresh: %w", err)
	}

	var updated int
	for i := range games {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := h.refreshOne(ctx, &games[i], logCtx.WithField("game_id", games[i].ID)); err != nil {
			// One bad lookup should not abort the batch.
			logCtx.WithError(err).WithField("game_id", games[i].ID).Warn("Price refresh failed for game")
			continue
		}
		updated++
	}

	h.invalidateCache(ctx, logCtx)
	logCtx.WithFields(logrus.Fields{"total": len(games), "updated": updated}).Info("Catalog price refresh finished")
	return nil
}

func (h *PriceRefreshHandler) refreshOne(ctx context.Context, game *domain.Game, logCtx *logrus.Entry) error {
	platform := ""
	if game.Platform != nil {
		platform = *game.Platform
	}

	price, err := h.priceSource.LowestPrice(ctx, game.Title, platform)
	if err != nil {
		if errors.Is(err, scraper.ErrNoListings) {
			logCtx.Debug("No listings found, keeping stored price")
			return nil
		}
		return err
	}

	game.Price = &price
	if err := h.gameRepo.Update(ctx, game); err != nil {
		return fmt.Errorf("store refreshed price for game %d: %w", game.ID, err)
	}
	logCtx.WithField("price", price).Info("Price refreshed")
	return nil
}

func (h *PriceRefreshHandler) invalidateCache(ctx context.Context, logCtx *logrus.Entry) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(ctx); err != nil {
		logCtx.WithError(err).Warn("Failed to invalidate catalog cache after price refresh")
	}
}
