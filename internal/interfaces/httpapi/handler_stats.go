package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

type ingestStatRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	MatchID  string `json:"match_id" validate:"required"`
	Kills    int    `json:"kills" validate:"gte=0"`
	Deaths   int    `json:"deaths" validate:"gte=0"`
	Assists  int    `json:"assists" validate:"gte=0"`
	ACS      int    `json:"acs" validate:"gte=0"`
}

type ingestStatResponse struct {
	PlayerID      string  `json:"player_id"`
	MatchID       string  `json:"match_id"`
	FantasyPoints float64 `json:"fantasy_points"`
}

type bulkIngestRequest struct {
	Stats []ingestStatRequest `json:"stats" validate:"required,min=1,max=500,dive"`
}

type bulkOutcomeDTO struct {
	PlayerID      string  `json:"player_id"`
	MatchID       string  `json:"match_id"`
	FantasyPoints float64 `json:"fantasy_points,omitempty"`
	Error         string  `json:"error,omitempty"`
}

type bulkIngestResponse struct {
	Accepted int              `json:"accepted"`
	Rejected int              `json:"rejected"`
	Outcomes []bulkOutcomeDTO `json:"outcomes"`
}

func (h *Handler) IngestStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestStat")
	defer span.End()

	var req ingestStatRequest
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

	stat, err := h.statsService.Ingest(ctx, usecase.IngestStatInput{
		PlayerID: req.PlayerID,
		MatchID:  req.MatchID,
		Kills:    req.Kills,
		Deaths:   req.Deaths,
		Assists:  req.Assists,
		ACS:      req.ACS,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest stat failed", "player_id", req.PlayerID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ingestStatResponse{
		PlayerID:      stat.PlayerID,
		MatchID:       stat.MatchID,
		FantasyPoints: stat.FantasyPoints,
	})
}

func (h *Handler) IngestStatsBulk(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestStatsBulk")
	defer span.End()

	var req bulkIngestRequest
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

	inputs := make([]usecase.IngestStatInput, 0, len(req.Stats))
	for _, item := range req.Stats {
		inputs = append(inputs, usecase.IngestStatInput{
			PlayerID: item.PlayerID,
			MatchID:  item.MatchID,
			Kills:    item.Kills,
			Deaths:   item.Deaths,
			Assists:  item.Assists,
			ACS:      item.ACS,
		})
	}

	outcomes, err := h.statsService.IngestBulk(ctx, inputs)
	if err != nil {
		h.logger.ErrorContext(ctx, "bulk ingest failed", "count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := bulkIngestResponse{Outcomes: make([]bulkOutcomeDTO, 0, len(outcomes))}
	for _, outcome := range outcomes {
		dto := bulkOutcomeDTO{
			PlayerID:      outcome.PlayerID,
			MatchID:       outcome.MatchID,
			FantasyPoints: outcome.Points,
		}
		if outcome.Err != nil {
			dto.Error = outcome.Err.Error()
			dto.FantasyPoints = 0
			resp.Rejected++
		} else {
			resp.Accepted++
		}
		resp.Outcomes = append(resp.Outcomes, dto)
	}

	status := http.StatusOK
	if resp.Rejected == 0 {
		status = http.StatusCreated
	}

	writeSuccess(ctx, w, status, resp)
}
