package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]player.Player, error) {
	const query = `
SELECT id, public_id, name, team_tag, mmr, is_active, created_at, updated_at
FROM players
WHERE is_active = TRUE
ORDER BY mmr DESC, public_id ASC`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}

	items := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}

	return items, nil
}
