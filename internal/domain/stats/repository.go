package stats

import "context"

// Repository describes match-stat persistence needs from use cases.
type Repository interface {
	// Insert writes one immutable stat row. Returns ErrDuplicate (possibly
	// wrapped) when a row for the same (player, match) pair already exists.
	Insert(ctx context.Context, stat PlayerMatchStat) error
	// TotalsByPlayer sums fantasy points per player across all stored rows
	// for the given player ids. Players with no rows are absent from the map.
	TotalsByPlayer(ctx context.Context, playerIDs []string) (map[string]float64, error)
}
