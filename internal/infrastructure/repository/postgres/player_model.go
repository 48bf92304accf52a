package postgres

import (
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	TeamTag   string    `db:"team_tag"`
	MMR       int       `db:"mmr"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.PublicID,
		Name:     m.Name,
		TeamTag:  m.TeamTag,
		MMR:      m.MMR,
		IsActive: m.IsActive,
	}
}
