package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vdcfantasy/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

func TestStatsServiceIngestScoresAndPersists(t *testing.T) {
	t.Parallel()

	repo := memory.NewStatsRepository()
	svc := NewStatsService(repo, 4, logging.NewNop())

	stat, err := svc.Ingest(context.Background(), IngestStatInput{
		PlayerID: "pl-a",
		MatchID:  "match-1",
		Kills:    20,
		Deaths:   12,
		Assists:  5,
		ACS:      250,
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if stat.FantasyPoints != 48.0 {
		t.Fatalf("fantasy points = %v, want 48.0", stat.FantasyPoints)
	}

	totals, err := repo.TotalsByPlayer(context.Background(), []string{"pl-a"})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals["pl-a"] != 48.0 {
		t.Fatalf("persisted total = %v, want 48.0", totals["pl-a"])
	}
}

func TestStatsServiceIngestRejectsDuplicate(t *testing.T) {
	t.Parallel()

	repo := memory.NewStatsRepository()
	svc := NewStatsService(repo, 4, logging.NewNop())

	input := IngestStatInput{PlayerID: "pl-a", MatchID: "match-1", Kills: 3}

	if _, err := svc.Ingest(context.Background(), input); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	_, err := svc.Ingest(context.Background(), input)
	if !errors.Is(err, ErrDuplicateIngestion) {
		t.Fatalf("err = %v, want ErrDuplicateIngestion", err)
	}
}

func TestStatsServiceIngestValidation(t *testing.T) {
	t.Parallel()

	repo := memory.NewStatsRepository()
	svc := NewStatsService(repo, 4, logging.NewNop())

	cases := []struct {
		name  string
		input IngestStatInput
	}{
		{name: "blank player id", input: IngestStatInput{PlayerID: " ", MatchID: "m1"}},
		{name: "blank match id", input: IngestStatInput{PlayerID: "pl-a", MatchID: ""}},
		{name: "negative kills", input: IngestStatInput{PlayerID: "pl-a", MatchID: "m1", Kills: -1}},
		{name: "negative acs", input: IngestStatInput{PlayerID: "pl-a", MatchID: "m1", ACS: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Ingest(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStatsServiceIngestBulkIsolatesFailures(t *testing.T) {
	t.Parallel()

	repo := memory.NewStatsRepository()
	svc := NewStatsService(repo, 4, logging.NewNop())

	inputs := []IngestStatInput{
		{PlayerID: "pl-a", MatchID: "m1", Kills: 10, Assists: 2},
		{PlayerID: "pl-b", MatchID: "m1", Kills: -1},
		{PlayerID: "pl-a", MatchID: "m2", Kills: 5},
	}

	outcomes, err := svc.IngestBulk(context.Background(), inputs)
	if err != nil {
		t.Fatalf("ingest bulk: %v", err)
	}
	if len(outcomes) != len(inputs) {
		t.Fatalf("outcomes = %d, want %d", len(outcomes), len(inputs))
	}

	if outcomes[0].Err != nil {
		t.Fatalf("line 0 failed: %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, ErrInvalidInput) {
		t.Fatalf("line 1 err = %v, want ErrInvalidInput", outcomes[1].Err)
	}
	if outcomes[2].Err != nil {
		t.Fatalf("line 2 failed: %v", outcomes[2].Err)
	}

	totals, err := repo.TotalsByPlayer(context.Background(), []string{"pl-a", "pl-b"})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if _, ok := totals["pl-b"]; ok {
		t.Fatal("rejected line must not be persisted")
	}
	if totals["pl-a"] != 33.0 {
		t.Fatalf("pl-a total = %v, want 33.0", totals["pl-a"])
	}
}

func TestStatsServiceIngestBulkLargeBatch(t *testing.T) {
	t.Parallel()

	repo := memory.NewStatsRepository()
	svc := NewStatsService(repo, 8, logging.NewNop())

	inputs := make([]IngestStatInput, 0, 100)
	for i := 0; i < 100; i++ {
		inputs = append(inputs, IngestStatInput{
			PlayerID: "pl-a",
			MatchID:  fmt.Sprintf("m%03d", i),
			Kills:    1,
		})
	}

	outcomes, err := svc.IngestBulk(context.Background(), inputs)
	if err != nil {
		t.Fatalf("ingest bulk: %v", err)
	}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			t.Fatalf("line %s failed: %v", outcome.MatchID, outcome.Err)
		}
	}

	totals, err := repo.TotalsByPlayer(context.Background(), []string{"pl-a"})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals["pl-a"] != 200.0 {
		t.Fatalf("pl-a total = %v, want 200.0", totals["pl-a"])
	}
}
