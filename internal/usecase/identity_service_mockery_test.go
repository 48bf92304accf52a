package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	identitymock "github.com/vdcfantasy/fantasy-api/internal/mocks/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

type stubIntrospector struct {
	principal identity.Principal
	err       error
}

func (s *stubIntrospector) Introspect(_ context.Context, _ string) (identity.Principal, error) {
	return s.principal, s.err
}

type stubConnector struct {
	profile identity.SocialProfile
	err     error
}

func (s *stubConnector) ExchangeCode(_ context.Context, _ string) (identity.SocialProfile, error) {
	return s.profile, s.err
}

func TestIdentityService_Sync_UpsertsProfileUsingMockery(t *testing.T) {
	t.Parallel()

	repo := identitymock.NewRepository(t)
	introspector := &stubIntrospector{
		principal: identity.Principal{SubjectID: "user-1", Username: "nether", AvatarURL: "https://cdn.example/a.png"},
	}

	service := NewIdentityService(repo, introspector, &stubConnector{}, logging.NewNop())

	repo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(v identity.Identity) bool {
			return v.ID == "user-1" && v.Username == "nether" && !v.UpdatedAt.IsZero()
		})).
		Return(identity.Identity{ID: "user-1", Username: "nether"}, nil).
		Once()

	got, err := service.Sync(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got.ID != "user-1" {
		t.Fatalf("synced id = %s, want user-1", got.ID)
	}
}

func TestIdentityService_Sync_RejectsBlankTokenUsingMockery(t *testing.T) {
	t.Parallel()

	repo := identitymock.NewRepository(t)
	service := NewIdentityService(repo, &stubIntrospector{}, &stubConnector{}, logging.NewNop())

	_, err := service.Sync(context.Background(), "   ")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIdentityService_LinkDiscord_AttachesToExistingUserUsingMockery(t *testing.T) {
	t.Parallel()

	repo := identitymock.NewRepository(t)
	connector := &stubConnector{
		profile: identity.SocialProfile{SubjectID: "discord-42", Username: "nether#0042"},
	}

	service := NewIdentityService(repo, &stubIntrospector{}, connector, logging.NewNop())

	repo.
		On("LinkSocial", mock.Anything, connector.profile).
		Return(identity.Identity{ID: "user-1", DiscordID: "discord-42"}, true, nil).
		Once()

	got, err := service.LinkDiscord(context.Background(), "oauth-code")
	if err != nil {
		t.Fatalf("link discord: %v", err)
	}
	if got.DiscordID != "discord-42" {
		t.Fatalf("discord id = %s, want discord-42", got.DiscordID)
	}
}

func TestIdentityService_LinkDiscord_UnknownAccountUsingMockery(t *testing.T) {
	t.Parallel()

	repo := identitymock.NewRepository(t)
	connector := &stubConnector{
		profile: identity.SocialProfile{SubjectID: "discord-unknown"},
	}

	service := NewIdentityService(repo, &stubIntrospector{}, connector, logging.NewNop())

	repo.
		On("LinkSocial", mock.Anything, connector.profile).
		Return(identity.Identity{}, false, nil).
		Once()

	_, err := service.LinkDiscord(context.Background(), "oauth-code")
	if !errors.Is(err, ErrUnregisteredIdentity) {
		t.Fatalf("expected ErrUnregisteredIdentity, got %v", err)
	}
}

func TestIdentityService_LinkDiscord_ExchangeFailureUsingMockery(t *testing.T) {
	t.Parallel()

	repo := identitymock.NewRepository(t)
	connector := &stubConnector{err: errors.New("discord: invalid_grant")}

	service := NewIdentityService(repo, &stubIntrospector{}, connector, logging.NewNop())

	_, err := service.LinkDiscord(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("expected an error from code exchange")
	}
}
