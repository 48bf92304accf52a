package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
)

// RosterRepository is an in-memory roster store keyed by user id. The upsert
// is atomic under a single lock, matching the relational store's conditional
// upsert semantics.
type RosterRepository struct {
	mu     sync.RWMutex
	byUser map[string]roster.Roster
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		byUser: make(map[string]roster.Roster),
	}
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Roster) (roster.Roster, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byUser[item.UserID]
	if ok {
		existing.PlayerIDs = clonePlayerIDs(item.PlayerIDs)
		existing.RatingTotal = item.RatingTotal
		existing.UpdatedAt = item.UpdatedAt
		r.byUser[item.UserID] = existing

		return cloneRoster(existing), false, nil
	}

	stored := cloneRoster(item)
	r.byUser[item.UserID] = stored

	return cloneRoster(stored), true, nil
}

func (r *RosterRepository) ListByUser(_ context.Context, userID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byUser[userID]
	if !ok {
		return []roster.Roster{}, nil
	}

	return []roster.Roster{cloneRoster(item)}, nil
}

func (r *RosterRepository) ListAll(_ context.Context) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]roster.Roster, 0, len(r.byUser))
	for _, item := range r.byUser {
		items = append(items, cloneRoster(item))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items, nil
}

func cloneRoster(item roster.Roster) roster.Roster {
	out := item
	out.PlayerIDs = clonePlayerIDs(item.PlayerIDs)

	return out
}

func clonePlayerIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)

	return out
}
