package roster

import (
	"testing"
	"time"
)

func TestDeadline_Admits(t *testing.T) {
	t.Parallel()

	lockAt := time.Date(2026, 5, 27, 23, 59, 59, 0, time.UTC)
	gate := NewDeadline(lockAt)

	if !gate.Admits(lockAt.Add(-time.Hour)) {
		t.Fatal("expected submission before deadline to be admitted")
	}
	if !gate.Admits(lockAt) {
		t.Fatal("expected submission exactly at deadline to be admitted")
	}
	if gate.Admits(lockAt.Add(time.Second)) {
		t.Fatal("expected submission after deadline to be rejected")
	}
}

func TestDeadline_NormalizesToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+7", 7*3600)
	local := time.Date(2026, 5, 28, 6, 59, 59, 0, loc)
	gate := NewDeadline(local)

	if !gate.At().Equal(time.Date(2026, 5, 27, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("expected deadline stored in UTC, got %v", gate.At())
	}
	if gate.At().Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", gate.At().Location())
	}
}
