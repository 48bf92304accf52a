package postgres

import (
	"database/sql"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
)

type identityTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	Username        string         `db:"username"`
	AvatarURL       string         `db:"avatar_url"`
	DiscordID       sql.NullString `db:"discord_id"`
	DiscordUsername sql.NullString `db:"discord_username"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (m identityTableModel) toDomain() identity.Identity {
	return identity.Identity{
		ID:              m.PublicID,
		Username:        m.Username,
		AvatarURL:       m.AvatarURL,
		DiscordID:       m.DiscordID.String,
		DiscordUsername: m.DiscordUsername.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
