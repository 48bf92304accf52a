package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/vdcfantasy/fantasy-api/internal/domain/stats"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

// IngestStatInput is one finalized match line for one player.
type IngestStatInput struct {
	PlayerID string
	MatchID  string
	Kills    int
	Deaths   int
	Assists  int
	ACS      int
}

// BulkOutcome reports the result of a single line inside a bulk batch.
type BulkOutcome struct {
	PlayerID string
	MatchID  string
	Points   float64
	Err      error
}

// StatsService converts raw match lines into scored, immutable stat rows.
// Fantasy points are computed once at ingestion; reads never rescore.
type StatsService struct {
	statsRepo stats.Repository
	logger    *logging.Logger
	poolSize  int
	now       func() time.Time
}

func NewStatsService(statsRepo stats.Repository, poolSize int, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if poolSize <= 0 {
		poolSize = 8
	}

	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
		poolSize:  poolSize,
		now:       time.Now,
	}
}

// Ingest scores and persists one stat line. A repeat of the same
// (player, match) pair is rejected so reruns of the stat job cannot double
// count.
func (s *StatsService) Ingest(ctx context.Context, input IngestStatInput) (stats.PlayerMatchStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Ingest")
	defer span.End()

	stat, err := s.buildStat(input)
	if err != nil {
		return stats.PlayerMatchStat{}, err
	}

	if err := s.statsRepo.Insert(ctx, stat); err != nil {
		if errors.Is(err, stats.ErrDuplicate) {
			return stats.PlayerMatchStat{}, fmt.Errorf("%w: player=%s match=%s", ErrDuplicateIngestion, stat.PlayerID, stat.MatchID)
		}

		return stats.PlayerMatchStat{}, fmt.Errorf("insert match stat: %w", err)
	}

	s.logger.InfoContext(ctx, "match stat ingested",
		"player_id", stat.PlayerID,
		"match_id", stat.MatchID,
		"fantasy_points", stat.FantasyPoints,
	)

	return stat, nil
}

// IngestBulk processes a whole batch concurrently on a bounded worker pool.
// Lines fail independently; one bad row never aborts the batch.
func (s *StatsService) IngestBulk(ctx context.Context, inputs []IngestStatInput) ([]BulkOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.IngestBulk")
	defer span.End()

	if len(inputs) == 0 {
		return []BulkOutcome{}, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("start ingestion pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]BulkOutcome, len(inputs))
	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Add(1)

		submitErr := pool.Submit(func() {
			defer wg.Done()

			stat, err := s.Ingest(ctx, input)
			outcomes[i] = BulkOutcome{
				PlayerID: input.PlayerID,
				MatchID:  input.MatchID,
				Points:   stat.FantasyPoints,
				Err:      err,
			}
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = BulkOutcome{
				PlayerID: input.PlayerID,
				MatchID:  input.MatchID,
				Err:      fmt.Errorf("submit to ingestion pool: %w", submitErr),
			}
		}
	}

	wg.Wait()

	return outcomes, nil
}

func (s *StatsService) buildStat(input IngestStatInput) (stats.PlayerMatchStat, error) {
	stat := stats.PlayerMatchStat{
		PlayerID:  strings.TrimSpace(input.PlayerID),
		MatchID:   strings.TrimSpace(input.MatchID),
		Kills:     input.Kills,
		Deaths:    input.Deaths,
		Assists:   input.Assists,
		ACS:       input.ACS,
		CreatedAt: s.now().UTC(),
	}
	if err := stat.Validate(); err != nil {
		return stats.PlayerMatchStat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stat.FantasyPoints = stats.CalculatePoints(stat.Kills, stat.Deaths, stat.Assists, stat.ACS)

	return stat, nil
}
