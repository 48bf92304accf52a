package gotrue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
	"github.com/vdcfantasy/fantasy-api/internal/platform/resilience"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

var errGoTrueTransient = crerr.New("auth provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a GoTrue-compatible auth service. It resolves bearer
// tokens to the provider's user record.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
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

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type userEnvelope struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		UserName   string `json:"user_name"`
		FullName   string `json:"full_name"`
		AvatarURL  string `json:"avatar_url"`
		ProviderID string `json:"provider_id"`
	} `json:"user_metadata"`
	Identities []struct {
		Provider string `json:"provider"`
		ID       string `json:"id"`
	} `json:"identities"`
}

// Introspect resolves an access token to the caller's principal via the
// provider's user endpoint. An invalid or expired token surfaces as
// usecase.ErrUnauthorized; provider outages as ErrDependencyUnavailable.
func (c *Client) Introspect(ctx context.Context, accessToken string) (identity.Principal, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
			return identity.Principal{}, fmt.Errorf("%w: auth provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.fetchUser(ctx, accessToken)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errGoTrueTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if crerr.Is(err, errGoTrueTransient) {
			return identity.Principal{}, fmt.Errorf("%w: auth provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}

		return identity.Principal{}, err
	}

	return principal, nil
}

func (c *Client) fetchUser(ctx context.Context, accessToken string) (identity.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return identity.Principal{}, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return identity.Principal{}, crerr.Wrapf(errGoTrueTransient, "send auth request: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return identity.Principal{}, crerr.Wrapf(errGoTrueTransient, "read auth response: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return identity.Principal{}, fmt.Errorf("%w: token rejected by auth provider", usecase.ErrUnauthorized)
	case resp.StatusCode >= 500:
		return identity.Principal{}, crerr.Wrapf(errGoTrueTransient, "auth provider status=%d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return identity.Principal{}, fmt.Errorf("auth provider status=%d", resp.StatusCode)
	}

	var user userEnvelope
	if err := sonic.Unmarshal(raw, &user); err != nil {
		return identity.Principal{}, fmt.Errorf("decode auth payload: %w", err)
	}
	if user.ID == "" {
		return identity.Principal{}, fmt.Errorf("%w: auth provider returned no subject", usecase.ErrUnauthorized)
	}

	username := user.UserMetadata.UserName
	if username == "" {
		username = user.UserMetadata.FullName
	}
	if username == "" {
		username = user.Email
	}

	// Discord logins carry the provider subject in the identities array
	// and mirror it in provider_id metadata; the array is authoritative.
	discordID := ""
	for _, linked := range user.Identities {
		if linked.Provider == "discord" && linked.ID != "" {
			discordID = linked.ID
			break
		}
	}
	if discordID == "" {
		discordID = user.UserMetadata.ProviderID
	}

	return identity.Principal{
		SubjectID: user.ID,
		Username:  username,
		AvatarURL: user.UserMetadata.AvatarURL,
		Email:     user.Email,
		DiscordID: discordID,
	}, nil
}
