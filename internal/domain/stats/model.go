package stats

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate reports that a stat row for the same (player, match) pair
// already exists. Stat rows are immutable once written.
var ErrDuplicate = errors.New("duplicate match stat")

// PlayerMatchStat is one player's line for one match, with the fantasy point
// value derived at ingestion time.
type PlayerMatchStat struct {
	PlayerID      string
	MatchID       string
	Kills         int
	Deaths        int
	Assists       int
	ACS           int
	FantasyPoints float64
	CreatedAt     time.Time
}

func (s PlayerMatchStat) Validate() error {
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if s.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if s.Kills < 0 || s.Deaths < 0 || s.Assists < 0 || s.ACS < 0 {
		return fmt.Errorf("stat counters cannot be negative")
	}

	return nil
}
