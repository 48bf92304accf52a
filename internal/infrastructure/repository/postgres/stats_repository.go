package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vdcfantasy/fantasy-api/internal/domain/stats"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Insert appends one immutable stat row. The unique index on
// (player_public_id, match_id) turns a rerun of the same line into
// stats.ErrDuplicate.
func (r *StatsRepository) Insert(ctx context.Context, stat stats.PlayerMatchStat) error {
	const query = `
INSERT INTO player_match_stats (player_public_id, match_id, kills, deaths, assists, acs, fantasy_points, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		stat.PlayerID,
		stat.MatchID,
		stat.Kills,
		stat.Deaths,
		stat.Assists,
		stat.ACS,
		stat.FantasyPoints,
		stat.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return stats.ErrDuplicate
		}

		return fmt.Errorf("insert match stat: %w", err)
	}

	return nil
}

// TotalsByPlayer sums stored fantasy points for the given players in one
// grouped query. Players without rows are simply absent from the result.
func (r *StatsRepository) TotalsByPlayer(ctx context.Context, playerIDs []string) (map[string]float64, error) {
	if len(playerIDs) == 0 {
		return map[string]float64{}, nil
	}

	query, args, err := sqlx.In(`
SELECT player_public_id, SUM(fantasy_points) AS total_points
FROM player_match_stats
WHERE player_public_id IN (?)
GROUP BY player_public_id`, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("build totals query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []struct {
		PlayerID    string  `db:"player_public_id"`
		TotalPoints float64 `db:"total_points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum fantasy points: %w", err)
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.PlayerID] = row.TotalPoints
	}

	return totals, nil
}
