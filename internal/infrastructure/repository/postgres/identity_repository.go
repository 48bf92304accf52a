package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
)

type IdentityRepository struct {
	db *sqlx.DB
}

func NewIdentityRepository(db *sqlx.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Upsert mirrors the auth provider's profile. Discord columns are only
// written when the incoming row carries them, so a plain profile sync never
// wipes an existing link.
func (r *IdentityRepository) Upsert(ctx context.Context, item identity.Identity) (identity.Identity, error) {
	const query = `
INSERT INTO users (public_id, username, avatar_url, discord_id, discord_username, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
ON CONFLICT (public_id) DO UPDATE
SET username = EXCLUDED.username,
    avatar_url = EXCLUDED.avatar_url,
    discord_id = COALESCE(EXCLUDED.discord_id, users.discord_id),
    discord_username = COALESCE(EXCLUDED.discord_username, users.discord_username),
    updated_at = EXCLUDED.updated_at
RETURNING id, public_id, username, avatar_url, discord_id, discord_username, created_at, updated_at`

	var row identityTableModel
	err := r.db.GetContext(ctx, &row, query,
		item.ID,
		item.Username,
		item.AvatarURL,
		item.DiscordID,
		item.DiscordUsername,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("upsert identity: %w", err)
	}

	return row.toDomain(), nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (identity.Identity, bool, error) {
	const query = `
SELECT id, public_id, username, avatar_url, discord_id, discord_username, created_at, updated_at
FROM users
WHERE public_id = $1`

	var row identityTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return identity.Identity{}, false, nil
		}

		return identity.Identity{}, false, fmt.Errorf("get identity: %w", err)
	}

	return row.toDomain(), true, nil
}

// LinkSocial attaches a Discord profile to the user already holding that
// Discord id. The second return reports whether such a user existed.
func (r *IdentityRepository) LinkSocial(ctx context.Context, profile identity.SocialProfile) (identity.Identity, bool, error) {
	const query = `
UPDATE users
SET discord_username = $2,
    avatar_url = CASE WHEN $3 <> '' THEN $3 ELSE avatar_url END,
    updated_at = NOW()
WHERE discord_id = $1
RETURNING id, public_id, username, avatar_url, discord_id, discord_username, created_at, updated_at`

	var row identityTableModel
	err := r.db.GetContext(ctx, &row, query, profile.SubjectID, profile.Username, profile.AvatarURL)
	if err != nil {
		if isNotFound(err) {
			return identity.Identity{}, false, nil
		}

		return identity.Identity{}, false, fmt.Errorf("link social profile: %w", err)
	}

	return row.toDomain(), true, nil
}
