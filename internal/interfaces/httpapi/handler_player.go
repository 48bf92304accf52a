package httpapi

import (
	"net/http"
)

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TeamTag  string `json:"team_tag"`
	MMR      int    `json:"mmr"`
	IsActive bool   `json:"is_active"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	items, err := h.playerService.ListActive(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]playerDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, playerDTO{
			ID:       item.ID,
			Name:     item.Name,
			TeamTag:  item.TeamTag,
			MMR:      item.MMR,
			IsActive: item.IsActive,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}
