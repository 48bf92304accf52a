package memory

import (
	"context"
	"sync"

	"github.com/vdcfantasy/fantasy-api/internal/domain/stats"
)

type statKey struct {
	playerID string
	matchID  string
}

// StatsRepository is an in-memory per-match stat store with the same
// (player, match) uniqueness the relational schema enforces.
type StatsRepository struct {
	mu    sync.RWMutex
	rows  map[statKey]stats.PlayerMatchStat
	order []statKey
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		rows: make(map[statKey]stats.PlayerMatchStat),
	}
}

func (r *StatsRepository) Insert(_ context.Context, stat stats.PlayerMatchStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statKey{playerID: stat.PlayerID, matchID: stat.MatchID}
	if _, ok := r.rows[key]; ok {
		return stats.ErrDuplicate
	}

	r.rows[key] = stat
	r.order = append(r.order, key)

	return nil
}

func (r *StatsRepository) TotalsByPlayer(_ context.Context, playerIDs []string) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, pid := range playerIDs {
		wanted[pid] = struct{}{}
	}

	totals := make(map[string]float64, len(wanted))
	for key, stat := range r.rows {
		if _, ok := wanted[key.playerID]; !ok {
			continue
		}
		totals[key.playerID] += stat.FantasyPoints
	}

	return totals, nil
}
