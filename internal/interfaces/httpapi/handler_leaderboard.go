package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

type leaderboardEntryDTO struct {
	Rank        int     `json:"rank"`
	RosterID    string  `json:"roster_id"`
	UserID      string  `json:"user_id"`
	TotalPoints float64 `json:"total_points"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	topN := usecase.DefaultTopN
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer between 1 and 100", usecase.ErrInvalidInput))
			return
		}
		topN = parsed
	}

	entries, err := h.leaderboardService.Top(ctx, topN)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, leaderboardEntryDTO{
			Rank:        entry.Rank,
			RosterID:    entry.RosterID,
			UserID:      entry.UserID,
			TotalPoints: entry.TotalPoints,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}
