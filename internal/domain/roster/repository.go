package roster

import "context"

// Repository describes roster persistence needs from use cases.
//
// Upsert is the correctness boundary for the one-roster-per-participant
// invariant: implementations must perform a single atomic conditional
// upsert keyed on UserID, never a separate read followed by a write. The
// returned flag reports whether the call created a new roster (true) or
// replaced an existing one (false), as observed by that same atomic call.
type Repository interface {
	Upsert(ctx context.Context, item Roster) (Roster, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Roster, error)
	ListAll(ctx context.Context) ([]Roster, error)
}
