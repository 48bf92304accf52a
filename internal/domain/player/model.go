package player

import "fmt"

// Player is a selectable pro in the fantasy pool. The roster of real players
// is owned by the combine pipeline; this service only reads it.
type Player struct {
	ID       string
	Name     string
	TeamTag  string
	MMR      int
	IsActive bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.MMR < 0 {
		return fmt.Errorf("player mmr cannot be negative")
	}

	return nil
}
