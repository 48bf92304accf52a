package identity

import "context"

// Repository describes identity persistence needs from use cases.
type Repository interface {
	// Upsert creates or refreshes the identity keyed by its subject id and
	// returns the stored record.
	Upsert(ctx context.Context, item Identity) (Identity, error)
	GetByID(ctx context.Context, id string) (Identity, bool, error)
	// LinkSocial attaches a Discord profile to the existing identity whose
	// stored Discord subject id matches. The second return is false when no
	// identity matches; callers decide how to surface that.
	LinkSocial(ctx context.Context, profile SocialProfile) (Identity, bool, error)
}
