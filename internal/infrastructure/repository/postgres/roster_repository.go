package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Upsert creates or replaces the user's roster in one statement. The
// conditional insert-or-update runs inside the database, so two concurrent
// first submissions for the same user can never both insert. The xmax check
// tells an insert apart from an update on the returned row.
func (r *RosterRepository) Upsert(ctx context.Context, item roster.Roster) (roster.Roster, bool, error) {
	const query = `
INSERT INTO fantasy_teams (public_id, user_id, player_ids, rating_total, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET player_ids = EXCLUDED.player_ids,
    rating_total = EXCLUDED.rating_total,
    updated_at = EXCLUDED.updated_at
RETURNING id, public_id, user_id, player_ids, rating_total, created_at, updated_at,
          (xmax = 0) AS inserted`

	var row struct {
		rosterTableModel
		Inserted bool `db:"inserted"`
	}
	err := r.db.GetContext(ctx, &row, query,
		item.ID,
		item.UserID,
		pq.StringArray(item.PlayerIDs),
		item.RatingTotal,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("upsert roster: %w", err)
	}

	return row.toDomain(), row.Inserted, nil
}

func (r *RosterRepository) ListByUser(ctx context.Context, userID string) ([]roster.Roster, error) {
	const query = `
SELECT id, public_id, user_id, player_ids, rating_total, created_at, updated_at
FROM fantasy_teams
WHERE user_id = $1
ORDER BY public_id`

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list rosters by user: %w", err)
	}

	return rosterRowsToDomain(rows), nil
}

func (r *RosterRepository) ListAll(ctx context.Context) ([]roster.Roster, error) {
	const query = `
SELECT id, public_id, user_id, player_ids, rating_total, created_at, updated_at
FROM fantasy_teams
ORDER BY public_id`

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all rosters: %w", err)
	}

	return rosterRowsToDomain(rows), nil
}

func rosterRowsToDomain(rows []rosterTableModel) []roster.Roster {
	items := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}

	return items
}
