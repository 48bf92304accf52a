package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/vdcfantasy/fantasy-api/internal/domain/roster"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

// An empty player_ids list is a valid submission; composition limits are
// owned by the team builder UI.
type submitTeamRequest struct {
	PlayerIDs   []string `json:"player_ids"`
	RatingTotal int      `json:"rating_total" validate:"gte=0"`
}

type rosterDTO struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	PlayerIDs   []string `json:"player_ids"`
	RatingTotal int      `json:"rating_total"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type submitTeamResponse struct {
	Roster rosterDTO `json:"roster"`
	Result string    `json:"result"`
}

func rosterToDTO(item roster.Roster) rosterDTO {
	playerIDs := item.PlayerIDs
	if playerIDs == nil {
		playerIDs = []string{}
	}

	return rosterDTO{
		ID:          item.ID,
		UserID:      item.UserID,
		PlayerIDs:   playerIDs,
		RatingTotal: item.RatingTotal,
		CreatedAt:   formatTimestamp(item.CreatedAt),
		UpdatedAt:   formatTimestamp(item.UpdatedAt),
	}
}

func (h *Handler) SubmitTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, result, err := h.teamService.Submit(ctx, usecase.SubmitTeamInput{
		UserID:      principal.SubjectID,
		PlayerIDs:   req.PlayerIDs,
		RatingTotal: req.RatingTotal,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit team failed", "user_id", principal.SubjectID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result == usecase.SubmitResultCreated {
		status = http.StatusCreated
	}

	writeSuccess(ctx, w, status, submitTeamResponse{
		Roster: rosterToDTO(stored),
		Result: string(result),
	})
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	items, err := h.teamService.ListByUser(ctx, principal.SubjectID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.SubjectID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]rosterDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, rosterToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}
