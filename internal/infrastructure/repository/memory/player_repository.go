package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
)

// PlayerRepository is an in-memory player pool for local runs and tests.
type PlayerRepository struct {
	mu   sync.RWMutex
	byID map[string]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		byID: make(map[string]player.Player),
	}
}

func (r *PlayerRepository) Put(item player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
}

func (r *PlayerRepository) ListActive(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]player.Player, 0, len(r.byID))
	for _, item := range r.byID {
		if !item.IsActive {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].MMR != items[j].MMR {
			return items[i].MMR > items[j].MMR
		}

		return items[i].ID < items[j].ID
	})

	return items, nil
}
