package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/scorewise/predictions-api/internal/domain/match"
	"github.com/scorewise/predictions-api/internal/usecase"
)

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	sport := sportFromQuery(r)
	items, err := h.matchService.ListLive(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "list live matches failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	sport := sportFromQuery(r)
	items, err := h.matchService.ListUpcoming(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming matches failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	sport := strings.ToLower(strings.TrimSpace(r.PathValue("sport")))
	rawLeagueID := strings.TrimSpace(r.PathValue("leagueID"))
	leagueRefID, err := strconv.ParseInt(rawLeagueID, 10, 64)
	if err != nil || leagueRefID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: invalid league id %q", usecase.ErrInvalidInput, rawLeagueID))
		return
	}

	table, err := h.standingService.GetTable(ctx, sport, leagueRefID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "sport", sport, "league_ref_id", leagueRefID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingTableToDTO(*table))
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func sportFromQuery(r *http.Request) string {
	sport := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sport")))
	if sport == "" {
		return match.SportFootball
	}
	return sport
}
