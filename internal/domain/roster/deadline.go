package roster

import "time"

// Deadline is the lock instant after which rosters become immutable. The
// same gate value applies to both first submission and replacement.
type Deadline struct {
	at time.Time
}

func NewDeadline(at time.Time) Deadline {
	return Deadline{at: at.UTC()}
}

// Admits reports whether a mutation at the given instant is still allowed.
// The boundary is inclusive: a submission exactly at the deadline passes.
func (d Deadline) Admits(now time.Time) bool {
	return !now.After(d.at)
}

func (d Deadline) At() time.Time {
	return d.at
}
