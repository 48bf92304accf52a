package gotrue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
	"github.com/vdcfantasy/fantasy-api/internal/platform/resilience"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "anon-key",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
}

func TestIntrospectResolvesPrincipal(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("authorization header = %q", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey header = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "user-1",
			"email": "nether@example.com",
			"user_metadata": {"user_name": "nether", "avatar_url": "https://cdn.example/a.png"}
		}`))
	})

	principal, err := client.Introspect(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	if principal.SubjectID != "user-1" {
		t.Fatalf("subject = %s, want user-1", principal.SubjectID)
	}
	if principal.Username != "nether" {
		t.Fatalf("username = %s, want nether", principal.Username)
	}
}

func TestIntrospectCarriesDiscordSubject(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "user-1",
			"email": "nether@example.com",
			"user_metadata": {"user_name": "nether", "provider_id": "discord-42"},
			"identities": [
				{"provider": "email", "id": "user-1"},
				{"provider": "discord", "id": "discord-42"}
			]
		}`))
	})

	principal, err := client.Introspect(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	if principal.DiscordID != "discord-42" {
		t.Fatalf("discord id = %q, want discord-42", principal.DiscordID)
	}
}

func TestIntrospectDiscordSubjectFromMetadataOnly(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "user-1",
			"user_metadata": {"user_name": "nether", "provider_id": "discord-42"}
		}`))
	})

	principal, err := client.Introspect(context.Background(), "token")
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	if principal.DiscordID != "discord-42" {
		t.Fatalf("discord id = %q, want discord-42", principal.DiscordID)
	}
}

func TestIntrospectFallsBackToEmailUsername(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "user-2", "email": "plain@example.com", "user_metadata": {}}`))
	})

	principal, err := client.Introspect(context.Background(), "token")
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	if principal.Username != "plain@example.com" {
		t.Fatalf("username = %s, want email fallback", principal.Username)
	}
}

func TestIntrospectRejectedToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Introspect(context.Background(), "expired")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestIntrospectProviderOutage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Introspect(context.Background(), "token")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("err = %v, want ErrDependencyUnavailable", err)
	}
}

func TestIntrospectCircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "anon-key",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Introspect(context.Background(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d err = %v, want ErrDependencyUnavailable", i, err)
		}
	}

	// Breaker is open now; the request must be rejected before any dial.
	if _, err := client.Introspect(context.Background(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open breaker err = %v, want ErrDependencyUnavailable", err)
	}
	if client.breaker.State() != "open" {
		t.Fatalf("breaker state = %s, want open", client.breaker.State())
	}
}
