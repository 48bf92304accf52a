package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
)

type rosterTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	UserID      string         `db:"user_id"`
	PlayerIDs   pq.StringArray `db:"player_ids"`
	RatingTotal int            `db:"rating_total"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m rosterTableModel) toDomain() roster.Roster {
	return roster.Roster{
		ID:          m.PublicID,
		UserID:      m.UserID,
		PlayerIDs:   []string(m.PlayerIDs),
		RatingTotal: m.RatingTotal,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
