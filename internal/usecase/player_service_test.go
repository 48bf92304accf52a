package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/vdcfantasy/fantasy-api/internal/platform/cache"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

type countingPlayerRepo struct {
	inner *memory.PlayerRepository
	calls int
}

func (r *countingPlayerRepo) ListActive(ctx context.Context) ([]player.Player, error) {
	r.calls++

	return r.inner.ListActive(ctx)
}

func TestPlayerServiceListActiveOrdersByMMR(t *testing.T) {
	t.Parallel()

	repo := memory.NewPlayerRepository()
	repo.Put(player.Player{ID: "pl-low", Name: "Low", MMR: 3000, IsActive: true})
	repo.Put(player.Player{ID: "pl-high", Name: "High", MMR: 4800, IsActive: true})
	repo.Put(player.Player{ID: "pl-bench", Name: "Bench", MMR: 5000, IsActive: false})

	svc := NewPlayerService(repo, nil, logging.NewNop())

	items, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].ID != "pl-high" || items[1].ID != "pl-low" {
		t.Fatalf("order = %s, %s; want pl-high then pl-low", items[0].ID, items[1].ID)
	}
}

func TestPlayerServiceListActiveUsesCache(t *testing.T) {
	t.Parallel()

	inner := memory.NewPlayerRepository()
	inner.Put(player.Player{ID: "pl-a", Name: "A", MMR: 4000, IsActive: true})
	repo := &countingPlayerRepo{inner: inner}

	svc := NewPlayerService(repo, cache.NewStore(time.Minute), logging.NewNop())

	for i := 0; i < 5; i++ {
		items, err := svc.ListActive(context.Background())
		if err != nil {
			t.Fatalf("list active #%d: %v", i, err)
		}
		if len(items) != 1 {
			t.Fatalf("items = %d, want 1", len(items))
		}
	}

	if repo.calls != 1 {
		t.Fatalf("store hit %d times, want 1", repo.calls)
	}
}
