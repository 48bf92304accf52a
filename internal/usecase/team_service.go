package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
	idgen "github.com/vdcfantasy/fantasy-api/internal/platform/id"
	"github.com/vdcfantasy/fantasy-api/internal/platform/logging"
)

// SubmitTeamInput is the incoming payload for create/replace roster.
type SubmitTeamInput struct {
	UserID      string
	PlayerIDs   []string
	RatingTotal int
}

type SubmitResult string

const (
	SubmitResultCreated SubmitResult = "created"
	SubmitResultUpdated SubmitResult = "updated"
)

// TeamService runs the roster submission workflow: participant check, lock
// deadline gate, then one atomic conditional upsert at the store.
type TeamService struct {
	rosterRepo   roster.Repository
	identityRepo identity.Repository
	deadline     roster.Deadline
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewTeamService(
	rosterRepo roster.Repository,
	identityRepo identity.Repository,
	deadline roster.Deadline,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		rosterRepo:   rosterRepo,
		identityRepo: identityRepo,
		deadline:     deadline,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit creates or wholesale-replaces the caller's roster. Roster size,
// player existence, and duplicate picks are intentionally not validated
// here; composition limits are owned by the team builder UI.
func (s *TeamService) Submit(ctx context.Context, input SubmitTeamInput) (roster.Roster, SubmitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Submit")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return roster.Roster{}, "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.RatingTotal < 0 {
		return roster.Roster{}, "", fmt.Errorf("%w: rating total cannot be negative", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return roster.Roster{}, "", err
	}

	_, exists, err := s.identityRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return roster.Roster{}, "", fmt.Errorf("get identity for submission: %w", err)
	}
	if !exists {
		return roster.Roster{}, "", fmt.Errorf("%w: user=%s", ErrUnknownParticipant, input.UserID)
	}

	now := s.now().UTC()
	if !s.deadline.Admits(now) {
		return roster.Roster{}, "", fmt.Errorf("%w: deadline was %s", ErrSubmissionLocked, s.deadline.At().Format(time.RFC3339))
	}

	// The id is only consumed when the upsert inserts; on replace the store
	// keeps the existing public id.
	rosterID, err := s.idGen.NewID()
	if err != nil {
		return roster.Roster{}, "", fmt.Errorf("generate roster id: %w", err)
	}

	next := roster.Roster{
		ID:          rosterID,
		UserID:      input.UserID,
		PlayerIDs:   playerIDs,
		RatingTotal: input.RatingTotal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := next.ValidateBasic(); err != nil {
		return roster.Roster{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, created, err := s.rosterRepo.Upsert(ctx, next)
	if err != nil {
		return roster.Roster{}, "", fmt.Errorf("upsert roster: %w", err)
	}

	result := SubmitResultUpdated
	if created {
		result = SubmitResultCreated
	}

	s.logger.InfoContext(ctx, "roster submitted",
		"user_id", input.UserID,
		"roster_id", stored.ID,
		"player_count", len(stored.PlayerIDs),
		"result", string(result),
	)

	return stored, result, nil
}

// ListByUser returns the caller's rosters; at most one given the uniqueness
// invariant, but the contract stays a list like the upstream API.
func (s *TeamService) ListByUser(ctx context.Context, userID string) ([]roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.rosterRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rosters by user: %w", err)
	}

	return items, nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	for _, pid := range playerIDs {
		pid = strings.TrimSpace(pid)
		if pid == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		cleaned = append(cleaned, pid)
	}

	return cleaned, nil
}
