package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
	"github.com/vdcfantasy/fantasy-api/internal/platform/resilience"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

const defaultAPIBaseURL = "https://discord.com/api"

var errDiscordTransient = crerr.New("discord transient failure")

type ClientConfig struct {
	ClientID       string
	ClientSecret   string
	RedirectURL    string
	APIBaseURL     string
	TokenURL       string
	HTTPClient     *http.Client
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client completes the Discord OAuth code flow and reads the profile of the
// authorizing account.
type Client struct {
	oauth          oauth2.Config
	apiBaseURL     string
	httpClient     *http.Client
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	endpoint := endpoints.Discord
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL, AuthURL: endpoint.AuthURL}
	}

	apiBaseURL := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"identify"},
		},
		apiBaseURL:     apiBaseURL,
		httpClient:     httpClient,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type userPayload struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// ExchangeCode trades the OAuth callback code for a token and resolves the
// account behind it. A rejected code surfaces as usecase.ErrInvalidInput.
func (c *Client) ExchangeCode(ctx context.Context, code string) (identity.SocialProfile, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "discord circuit breaker rejected request", "state", c.breaker.State())
			return identity.SocialProfile{}, fmt.Errorf("%w: discord is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	profile, err := c.exchange(ctx, code)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errDiscordTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if crerr.Is(err, errDiscordTransient) {
			return identity.SocialProfile{}, fmt.Errorf("%w: discord is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}

		return identity.SocialProfile{}, err
	}

	return profile, nil
}

func (c *Client) exchange(ctx context.Context, code string) (identity.SocialProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if crerr.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= 500 {
			return identity.SocialProfile{}, crerr.Wrapf(errDiscordTransient, "exchange code: status=%d", retrieveErr.Response.StatusCode)
		}

		return identity.SocialProfile{}, fmt.Errorf("%w: discord rejected authorization code", usecase.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return identity.SocialProfile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return identity.SocialProfile{}, crerr.Wrapf(errDiscordTransient, "fetch profile: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return identity.SocialProfile{}, crerr.Wrapf(errDiscordTransient, "read profile response: %v", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return identity.SocialProfile{}, crerr.Wrapf(errDiscordTransient, "discord status=%d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return identity.SocialProfile{}, fmt.Errorf("discord status=%d", resp.StatusCode)
	}

	var user userPayload
	if err := sonic.Unmarshal(raw, &user); err != nil {
		return identity.SocialProfile{}, fmt.Errorf("decode profile payload: %w", err)
	}
	if user.ID == "" {
		return identity.SocialProfile{}, fmt.Errorf("discord returned no account id")
	}

	username := user.Username
	if user.Discriminator != "" && user.Discriminator != "0" {
		username = user.Username + "#" + user.Discriminator
	}

	var avatarURL string
	if user.Avatar != "" {
		avatarURL = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", user.ID, user.Avatar)
	}

	return identity.SocialProfile{
		SubjectID: user.ID,
		Username:  username,
		AvatarURL: avatarURL,
	}, nil
}
