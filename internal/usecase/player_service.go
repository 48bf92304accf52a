package usecase

import (
	"context"
	"fmt"

	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
	"github.com/vdcfantasy/fantasy-api/internal/platform/cache"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

const playerPoolCacheKey = "players:active"

// PlayerService serves the draft pool. The pool changes rarely, so reads go
// through a short TTL cache in front of the store.
type PlayerService struct {
	playerRepo player.Repository
	cache      *cache.Store
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, cacheStore *cache.Store, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		cache:      cacheStore,
		logger:     logger,
	}
}

// ListActive returns the draftable pool ordered by MMR, highest first.
func (s *PlayerService) ListActive(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListActive")
	defer span.End()

	if s.cache == nil {
		return s.playerRepo.ListActive(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, playerPoolCacheKey, func(ctx context.Context) (any, error) {
		items, err := s.playerRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active players: %w", err)
		}

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected player cache value type %T", value)
	}

	return items, nil
}
