package service

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/domain"
	"github.com/wh33les/HusbandsGames/internal/dto"
	"github.com/wh33les/HusbandsGames/internal/repository"
	"github.com/wh33les/HusbandsGames/internal/tasks"
)

// TaskEnqueuer is the slice of *asynq.Client the catalog service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ChangeNotifier receives an event after every successful mutation. The
// WebSocket hub implements it; tests substitute a mock.
type ChangeNotifier interface {
	NotifyChange(event string, game *domain.Game)
}

// Catalog change event names pushed to WebSocket subscribers.
const (
	EventGameCreated = "game_created"
	EventGameUpdated = "game_updated"
	EventGameDeleted = "game_deleted"
)

// CatalogService implements the read and admin mutation paths of the
// catalog. Reads go through the Redis listing cache; every mutation
// invalidates it and notifies subscribers.
type CatalogService struct {
	games    repository.GameRepository
	cache    repository.CatalogCache
	enqueuer TaskEnqueuer   // optional; nil disables price lookups
	notifier ChangeNotifier // optional; nil disables change events
	log      *logrus.Entry
}

// NewCatalogService creates the service. games must not be nil; cache,
// enqueuer and notifier may be nil to disable the respective side effect.
func NewCatalogService(games repository.GameRepository, cache repository.CatalogCache, enqueuer TaskEnqueuer, notifier ChangeNotifier) *CatalogService {
	if games == nil {
		panic("GameRepository cannot be nil for CatalogService")
	}
	return &CatalogService{
		games:    games,
		cache:    cache,
		enqueuer: enqueuer,
		notifier: notifier,
		log:      logrus.WithField("component", "catalog_service"),
	}
}

// List returns one page of the catalog, serving from the listing cache
// when it is warm. Cache failures degrade to the database, never to an
// error response.
func (s *CatalogService) List(ctx context.Context, skip, limit int) ([]domain.Game, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	all, err := s.cachedListing(ctx)
	if err != nil {
		return nil, ErrInternalServer
	}
	if skip >= len(all) {
		return []domain.Game{}, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (s *CatalogService) cachedListing(ctx context.Context) ([]domain.Game, error) {
	if s.cache != nil {
		cached, err := s.cache.GetListing(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Catalog cache read failed, falling back to database")
		} else if cached != nil {
			return cached, nil
		}
	}

	all, err := s.games.ListAll(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list games")
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetListing(ctx, all); err != nil {
			s.log.WithError(err).Warn("Failed to populate catalog cache")
		}
	}
	return all, nil
}

// Get returns a single game by id.
func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		s.log.WithError(err).WithField("game_id", id).Error("Failed to find game")
		return nil, ErrInternalServer
	}
	return game, nil
}

// Create inserts a new game. The server owns id and created_at, so the
// request shape cannot carry them. When no price is supplied a background
// lookup fills it in from the cheapest current listing.
func (s *CatalogService) Create(ctx context.Context, in dto.GameCreate) (*domain.Game, error) {
	opened := false
	if in.Opened != nil {
		opened = *in.Opened
	}
	game := &domain.Game{
		Title:       in.Title,
		Platform:    in.Platform,
		Genre:       in.Genre,
		ReleaseYear: in.ReleaseYear,
		Price:       in.Price,
		Region:      in.Region,
		Publisher:   in.Publisher,
		Opened:      opened,
	}

	if err := s.games.Create(ctx, game); err != nil {
		s.log.WithError(err).WithField("title", in.Title).Error("Failed to create game")
		return nil, ErrInternalServer
	}

	s.afterMutation(ctx, EventGameCreated, game)

	if in.Price == nil {
		s.enqueuePriceRefresh(game.ID)
	}

	s.log.WithFields(logrus.Fields{"game_id": game.ID, "title": game.Title}).Info("Game created")
	return game, nil
}

// Update applies a partial update: only fields present in the request
// change, everything else keeps its stored value.
func (s *CatalogService) Update(ctx context.Context, id uint, in dto.GameUpdate) (*domain.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		s.log.WithError(err).WithField("game_id", id).Error("Failed to load game for update")
		return nil, ErrInternalServer
	}

	applyUpdate(game, in)

	if err := s.games.Update(ctx, game); err != nil {
		s.log.WithError(err).WithField("game_id", id).Error("Failed to update game")
		return nil, ErrInternalServer
	}

	s.afterMutation(ctx, EventGameUpdated, game)
	s.log.WithField("game_id", id).Info("Game updated")
	return game, nil
}

// Delete removes a game and returns its title for the confirmation
// message.
func (s *CatalogService) Delete(ctx context.Context, id uint) (string, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return "", ErrGameNotFound
		}
		s.log.WithError(err).WithField("game_id", id).Error("Failed to load game for delete")
		return "", ErrInternalServer
	}

	if err := s.games.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return "", ErrGameNotFound
		}
		s.log.WithError(err).WithField("game_id", id).Error("Failed to delete game")
		return "", ErrInternalServer
	}

	s.afterMutation(ctx, EventGameDeleted, game)
	s.log.WithFields(logrus.Fields{"game_id": id, "title": game.Title}).Info("Game deleted")
	return game.Title, nil
}

func applyUpdate(game *domain.Game, in dto.GameUpdate) {
	if in.Title != nil {
		game.Title = *in.Title
	}
	if in.Platform != nil {
		game.Platform = in.Platform
	}
	if in.Genre != nil {
		game.Genre = in.Genre
	}
	if in.ReleaseYear != nil {
		game.ReleaseYear = in.ReleaseYear
	}
	if in.Price != nil {
		game.Price = in.Price
	}
	if in.Region != nil {
		game.Region = in.Region
	}
	if in.Publisher != nil {
		game.Publisher = in.Publisher
	}
	if in.Opened != nil {
		game.Opened = *in.Opened
	}
}

func (s *CatalogService) afterMutation(ctx context.Context, event string, game *domain.Game) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate catalog cache after mutation")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyChange(event, game)
	}
}

func (s *CatalogService) enqueuePriceRefresh(gameID uint) {
	if s.enqueuer == nil {
		return
	}
	task, err := tasks.NewPriceRefreshTask(gameID)
	if err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Error("Failed to build price refresh task")
		return
	}
	if _, err := s.enqueuer.Enqueue(task); err != nil {
		s.log.WithError(err).WithField("game_id", gameID).Warn("Failed to enqueue price refresh task")
	}
}
