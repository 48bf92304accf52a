package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
	"github.com/vdcfantasy/fantasy-api/internal/domain/stats"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
	"github.com/vdcfantasy/fantasy-api/internal/platform/resilience"
)

// DefaultTopN is the leaderboard size served to clients.
const DefaultTopN = 10

// LeaderboardEntry is one ranked roster with its aggregated score.
type LeaderboardEntry struct {
	Rank        int
	RosterID    string
	UserID      string
	TotalPoints float64
}

// LeaderboardService aggregates every roster's score from the immutable stat
// rows. Scores are summed per request; nothing is cached between stat
// ingestions, so a new match is visible as soon as its rows land.
type LeaderboardService struct {
	rosterRepo   roster.Repository
	statsRepo    stats.Repository
	logger       *logging.Logger
	singleFlight resilience.SingleFlight
}

func NewLeaderboardService(rosterRepo roster.Repository, statsRepo stats.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// Top returns the highest scoring rosters, descending by points with roster
// id as the stable tiebreak. Concurrent identical requests share one
// computation.
func (s *LeaderboardService) Top(ctx context.Context, topN int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	if topN <= 0 {
		topN = DefaultTopN
	}

	// The computation is shared by every coalesced caller, so it must not
	// inherit the leader's cancellation.
	sharedCtx := context.WithoutCancel(ctx)
	result, err, _ := s.singleFlight.Do("leaderboard", func() (any, error) {
		return s.compute(sharedCtx)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := result.([]LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected leaderboard result type %T", result)
	}

	if len(entries) > topN {
		entries = entries[:topN]
	}

	ranked := make([]LeaderboardEntry, len(entries))
	copy(ranked, entries)
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}

func (s *LeaderboardService) compute(ctx context.Context) ([]LeaderboardEntry, error) {
	rosters, err := s.rosterRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	if len(rosters) == 0 {
		return []LeaderboardEntry{}, nil
	}

	totals, err := s.batchTotals(ctx, rosters)
	if err != nil {
		// One failed batch should not blank the whole board; fall back to
		// per-roster lookups and degrade only the rosters that still fail.
		s.logger.WarnContext(ctx, "leaderboard batch totals failed, using per-roster fallback", "error", err.Error())
		totals = s.fallbackTotals(ctx, rosters)
	}

	entries := make([]LeaderboardEntry, 0, len(rosters))
	for _, item := range rosters {
		var sum float64
		for _, pid := range item.PlayerIDs {
			sum += totals[pid]
		}

		entries = append(entries, LeaderboardEntry{
			RosterID:    item.ID,
			UserID:      item.UserID,
			TotalPoints: sum,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}

		return entries[i].RosterID < entries[j].RosterID
	})

	return entries, nil
}

func (s *LeaderboardService) batchTotals(ctx context.Context, rosters []roster.Roster) (map[string]float64, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(rosters)*5)
	for _, item := range rosters {
		for _, pid := range item.PlayerIDs {
			if _, ok := seen[pid]; ok {
				continue
			}
			seen[pid] = struct{}{}
			ids = append(ids, pid)
		}
	}
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	return s.statsRepo.TotalsByPlayer(ctx, ids)
}

func (s *LeaderboardService) fallbackTotals(ctx context.Context, rosters []roster.Roster) map[string]float64 {
	type partial struct {
		totals map[string]float64
	}

	workers := pool.NewWithResults[partial]().WithMaxGoroutines(4)

	for _, item := range rosters {
		workers.Go(func() partial {
			totals, err := s.statsRepo.TotalsByPlayer(ctx, item.PlayerIDs)
			if err != nil {
				s.logger.WarnContext(ctx, "leaderboard roster lookup failed, scoring as zero",
					"roster_id", item.ID,
					"error", err.Error(),
				)

				return partial{totals: map[string]float64{}}
			}

			return partial{totals: totals}
		})
	}

	merged := make(map[string]float64)
	for _, part := range workers.Wait() {
		for pid, points := range part.totals {
			merged[pid] = points
		}
	}

	return merged
}
