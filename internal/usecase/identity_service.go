package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

// TokenIntrospector resolves an access token to the auth provider's view of
// the caller.
type TokenIntrospector interface {
	Introspect(ctx context.Context, accessToken string) (identity.Principal, error)
}

// SocialConnector exchanges an OAuth authorization code for the provider's
// profile of the caller.
type SocialConnector interface {
	ExchangeCode(ctx context.Context, code string) (identity.SocialProfile, error)
}

// IdentityService keeps the local user table in step with the external auth
// provider and links social accounts onto existing users.
type IdentityService struct {
	identityRepo identity.Repository
	introspector TokenIntrospector
	connector    SocialConnector
	logger       *logging.Logger
	now          func() time.Time
}

func NewIdentityService(
	identityRepo identity.Repository,
	introspector TokenIntrospector,
	connector SocialConnector,
	logger *logging.Logger,
) *IdentityService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IdentityService{
		identityRepo: identityRepo,
		introspector: introspector,
		connector:    connector,
		logger:       logger,
		now:          time.Now,
	}
}

// Sync mirrors the auth provider's profile into the local user table. First
// sync creates the row; later syncs refresh the mutable profile fields.
func (s *IdentityService) Sync(ctx context.Context, accessToken string) (identity.Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Sync")
	defer span.End()

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return identity.Identity{}, fmt.Errorf("%w: access token is required", ErrUnauthorized)
	}

	principal, err := s.introspector.Introspect(ctx, accessToken)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("introspect access token: %w", err)
	}

	now := s.now().UTC()
	stored, err := s.identityRepo.Upsert(ctx, identity.Identity{
		ID:        principal.SubjectID,
		Username:  principal.Username,
		AvatarURL: principal.AvatarURL,
		DiscordID: principal.DiscordID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return identity.Identity{}, fmt.Errorf("upsert identity: %w", err)
	}

	s.logger.InfoContext(ctx, "identity synced", "user_id", stored.ID)

	return stored, nil
}

// LinkDiscord resolves an OAuth callback code to a Discord profile and
// attaches it to the already-registered user holding that Discord id.
// Unknown Discord accounts are rejected; linking never creates users.
func (s *IdentityService) LinkDiscord(ctx context.Context, code string) (identity.Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.LinkDiscord")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return identity.Identity{}, fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}

	if s.connector == nil {
		return identity.Identity{}, fmt.Errorf("%w: discord linking is not configured", ErrDependencyUnavailable)
	}

	profile, err := s.connector.ExchangeCode(ctx, code)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("exchange discord code: %w", err)
	}

	linked, found, err := s.identityRepo.LinkSocial(ctx, profile)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("link discord profile: %w", err)
	}
	if !found {
		return identity.Identity{}, fmt.Errorf("%w: discord account %s is not attached to any user", ErrUnregisteredIdentity, profile.SubjectID)
	}

	s.logger.InfoContext(ctx, "discord account linked",
		"user_id", linked.ID,
		"discord_id", profile.SubjectID,
	)

	return linked, nil
}
