package identity

import (
	"fmt"
	"time"
)

// Principal is the verified caller resolved from a bearer token by the
// upstream auth provider. DiscordID carries the provider subject when the
// caller logged in through Discord; it is empty for other login methods.
type Principal struct {
	SubjectID string
	Username  string
	AvatarURL string
	Email     string
	DiscordID string
}

// SocialProfile is a third-party (Discord) profile obtained from an OAuth
// code exchange.
type SocialProfile struct {
	SubjectID string
	Username  string
	AvatarURL string
}

// Identity is the internal participant record keyed by the auth provider's
// subject id. The Discord fields are populated on first login when the auth
// provider exposes the provider subject, and refreshed by the social link
// flow.
type Identity struct {
	ID              string
	Username        string
	AvatarURL       string
	DiscordID       string
	DiscordUsername string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (i Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity id is required")
	}
	if i.Username == "" {
		return fmt.Errorf("identity username is required")
	}

	return nil
}
