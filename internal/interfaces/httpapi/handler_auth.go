package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/vdcfantasy/fantasy-api/internal/domain/identity"
	"github.com/vdcfantasy/fantasy-api/internal/usecase"
)

type identityDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	DiscordID       string `json:"discord_id,omitempty"`
	DiscordUsername string `json:"discord_username,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func identityToDTO(item identity.Identity) identityDTO {
	return identityDTO{
		ID:              item.ID,
		Username:        item.Username,
		AvatarURL:       item.AvatarURL,
		DiscordID:       item.DiscordID,
		DiscordUsername: item.DiscordUsername,
		CreatedAt:       formatTimestamp(item.CreatedAt),
		UpdatedAt:       formatTimestamp(item.UpdatedAt),
	}
}

type discordCallbackRequest struct {
	Code string `json:"code" validate:"required"`
}

// SyncIdentity reads the bearer token straight off the request; the token
// itself is the input here, so the route does not sit behind RequireAuth.
func (h *Handler) SyncIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncIdentity")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	synced, err := h.identityService.Sync(ctx, token)
	if err != nil {
		h.logger.WarnContext(ctx, "identity sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, identityToDTO(synced))
}

func (h *Handler) DiscordCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DiscordCallback")
	defer span.End()

	var req discordCallbackRequest
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

	linked, err := h.identityService.LinkDiscord(ctx, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "discord link failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, identityToDTO(linked))
}
