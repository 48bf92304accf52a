package roster

import (
	"fmt"
	"time"
)

// Roster is one participant's fantasy team. At most one roster exists per
// participant; resubmission replaces the player list and rating wholesale.
// RatingTotal is a display value supplied by the caller at submission time
// and is not recomputed server-side.
type Roster struct {
	ID          string
	UserID      string
	PlayerIDs   []string
	RatingTotal int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.RatingTotal < 0 {
		return fmt.Errorf("rating total cannot be negative")
	}

	return nil
}
