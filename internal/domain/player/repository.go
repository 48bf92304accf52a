package player

import "context"

// Repository describes player pool reads needed by use cases.
type Repository interface {
	// ListActive returns active players ordered by MMR descending.
	ListActive(ctx context.Context) ([]Player, error)
}
