package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/predictions/{category}", handler.ListPredictions)
	mux.HandleFunc("GET /v1/matches/live", handler.ListLiveMatches)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/standings/{sport}/{leagueID}", handler.GetStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	// The literal vip pattern is more specific than /v1/predictions/{category}
	// and wins route selection, so only this path carries the auth gate.
	mux.Handle("GET /v1/predictions/vip", RequireAuth(verifier, http.HandlerFunc(handler.ListVIPPredictions)))

	mux.Handle("POST /v1/admin/predictions/generate", RequireAuth(verifier, http.HandlerFunc(handler.GeneratePredictions)))
	mux.Handle("GET /v1/admin/predictions/{predictionID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPrediction)))
	mux.Handle("PATCH /v1/admin/predictions/{predictionID}/result", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePredictionResult)))
	mux.Handle("DELETE /v1/admin/predictions/{predictionID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePrediction)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFixturesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-leagues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLeaguesJob)))
	mux.Handle("POST /v1/internal/jobs/generate-predictions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunGeneratePredictionsJob)))
}
