package memory

import (
	"context"
	"sync"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
)

// IdentityRepository is an in-memory user store keyed by auth subject id.
type IdentityRepository struct {
	mu   sync.RWMutex
	byID map[string]identity.Identity
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		byID: make(map[string]identity.Identity),
	}
}

func (r *IdentityRepository) Upsert(_ context.Context, item identity.Identity) (identity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[item.ID]
	if ok {
		existing.Username = item.Username
		existing.AvatarURL = item.AvatarURL
		existing.UpdatedAt = item.UpdatedAt
		if item.DiscordID != "" {
			existing.DiscordID = item.DiscordID
			existing.DiscordUsername = item.DiscordUsername
		}
		r.byID[item.ID] = existing

		return existing, nil
	}

	r.byID[item.ID] = item

	return item, nil
}

func (r *IdentityRepository) GetByID(_ context.Context, id string) (identity.Identity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]

	return item, ok, nil
}

func (r *IdentityRepository) LinkSocial(_ context.Context, profile identity.SocialProfile) (identity.Identity, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.byID {
		if item.DiscordID != profile.SubjectID {
			continue
		}

		item.DiscordUsername = profile.Username
		if profile.AvatarURL != "" {
			item.AvatarURL = profile.AvatarURL
		}
		r.byID[id] = item

		return item, true, nil
	}

	return identity.Identity{}, false, nil
}
