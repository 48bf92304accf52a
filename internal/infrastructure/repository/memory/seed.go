package memory

import (
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/domain/player"
)

// SeedPlayers is the bootstrap draft pool shared by the memory stores and
// the database bootstrap.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-aether", Name: "Aether", TeamTag: "NOVA", MMR: 4850, IsActive: true},
		{ID: "pl-brisk", Name: "Brisk", TeamTag: "NOVA", MMR: 4700, IsActive: true},
		{ID: "pl-cinder", Name: "Cinder", TeamTag: "HAVC", MMR: 4620, IsActive: true},
		{ID: "pl-drift", Name: "Drift", TeamTag: "HAVC", MMR: 4510, IsActive: true},
		{ID: "pl-ember", Name: "Ember", TeamTag: "VOLT", MMR: 4390, IsActive: true},
		{ID: "pl-flux", Name: "Flux", TeamTag: "VOLT", MMR: 4100, IsActive: false},
	}
}

// Seed fills the memory stores for local runs without a database.
func Seed(players *PlayerRepository, identities *IdentityRepository) {
	for _, item := range SeedPlayers() {
		players.Put(item)
	}

	now := time.Now().UTC()
	identities.byID["local-user"] = identity.Identity{
		ID:        "local-user",
		Username:  "localdev",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
