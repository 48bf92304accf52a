package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/repository/memory"
	idgen "github.com/vdcfantasy/fantasy-api/internal/platform/id"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

var testDeadline = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func newTeamFixture(t *testing.T) (*TeamService, *memory.RosterRepository, *memory.IdentityRepository) {
	t.Helper()

	rosters := memory.NewRosterRepository()
	identities := memory.NewIdentityRepository()

	svc := NewTeamService(
		rosters,
		identities,
		roster.NewDeadline(testDeadline),
		idgen.NewRandomGenerator(),
		logging.NewNop(),
	)
	svc.now = func() time.Time { return testDeadline.Add(-time.Hour) }

	return svc, rosters, identities
}

func registerUser(t *testing.T, identities *memory.IdentityRepository, userID string) {
	t.Helper()

	_, err := identities.Upsert(context.Background(), identity.Identity{
		ID:       userID,
		Username: userID,
	})
	if err != nil {
		t.Fatalf("seed identity: %v", err)
	}
}

func TestTeamServiceSubmitCreatesThenReplaces(t *testing.T) {
	t.Parallel()

	svc, _, identities := newTeamFixture(t)
	registerUser(t, identities, "user-1")

	first, result, err := svc.Submit(context.Background(), SubmitTeamInput{
		UserID:      "user-1",
		PlayerIDs:   []string{"pl-a", "pl-b"},
		RatingTotal: 9300,
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if result != SubmitResultCreated {
		t.Fatalf("result = %q, want created", result)
	}
	if first.ID == "" {
		t.Fatal("expected a generated roster id")
	}

	second, result, err := svc.Submit(context.Background(), SubmitTeamInput{
		UserID:      "user-1",
		PlayerIDs:   []string{"pl-c"},
		RatingTotal: 4600,
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result != SubmitResultUpdated {
		t.Fatalf("result = %q, want updated", result)
	}
	if second.ID != first.ID {
		t.Fatalf("replace changed roster id %q -> %q", first.ID, second.ID)
	}
	if len(second.PlayerIDs) != 1 || second.PlayerIDs[0] != "pl-c" {
		t.Fatalf("unexpected picks after replace: %v", second.PlayerIDs)
	}

	listed, err := svc.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected a single roster per user, got %d", len(listed))
	}
	if listed[0].RatingTotal != 4600 {
		t.Fatalf("rating total = %d, want 4600", listed[0].RatingTotal)
	}
}

func TestTeamServiceSubmitRejectsUnknownParticipant(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTeamFixture(t)

	_, _, err := svc.Submit(context.Background(), SubmitTeamInput{
		UserID:    "ghost",
		PlayerIDs: []string{"pl-a"},
	})
	if !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("err = %v, want ErrUnknownParticipant", err)
	}
}

func TestTeamServiceSubmitDeadlineGate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "before deadline", now: testDeadline.Add(-time.Minute), wantErr: false},
		{name: "exactly at deadline", now: testDeadline, wantErr: false},
		{name: "after deadline", now: testDeadline.Add(time.Second), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, identities := newTeamFixture(t)
			registerUser(t, identities, "user-1")
			svc.now = func() time.Time { return tc.now }

			_, _, err := svc.Submit(context.Background(), SubmitTeamInput{
				UserID:    "user-1",
				PlayerIDs: []string{"pl-a"},
			})
			if tc.wantErr {
				if !errors.Is(err, ErrSubmissionLocked) {
					t.Fatalf("err = %v, want ErrSubmissionLocked", err)
				}

				return
			}
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
		})
	}
}

func TestTeamServiceSubmitValidation(t *testing.T) {
	t.Parallel()

	svc, _, identities := newTeamFixture(t)
	registerUser(t, identities, "user-1")

	cases := []struct {
		name  string
		input SubmitTeamInput
	}{
		{name: "blank user id", input: SubmitTeamInput{UserID: "  ", PlayerIDs: []string{"pl-a"}}},
		{name: "blank player id", input: SubmitTeamInput{UserID: "user-1", PlayerIDs: []string{"pl-a", " "}}},
		{name: "negative rating", input: SubmitTeamInput{UserID: "user-1", PlayerIDs: []string{"pl-a"}, RatingTotal: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := svc.Submit(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestTeamServiceSubmitEmptyRosterAllowed(t *testing.T) {
	t.Parallel()

	svc, _, identities := newTeamFixture(t)
	registerUser(t, identities, "user-1")

	stored, result, err := svc.Submit(context.Background(), SubmitTeamInput{
		UserID:    "user-1",
		PlayerIDs: nil,
	})
	if err != nil {
		t.Fatalf("submit empty roster: %v", err)
	}
	if result != SubmitResultCreated {
		t.Fatalf("result = %q, want created", result)
	}
	if len(stored.PlayerIDs) != 0 {
		t.Fatalf("expected no picks, got %v", stored.PlayerIDs)
	}
}
