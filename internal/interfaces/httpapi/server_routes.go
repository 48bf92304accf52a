package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("POST /v1/auth/sync", handler.SyncIdentity)
	mux.HandleFunc("POST /v1/auth/discord/callback", handler.DiscordCallback)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/fantasy/teams", RequireAuth(verifier, http.HandlerFunc(handler.SubmitTeam)))
	mux.Handle("GET /v1/fantasy/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestStat)))
	mux.Handle("POST /v1/stats/bulk", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestStatsBulk)))
}
