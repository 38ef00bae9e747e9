package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/scorewise/predictions-api/internal/usecase"
)

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	if h.matchSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.matchSyncService.SyncLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync live job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncReportToDTO(report))
}

func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	if h.matchSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.matchSyncService.SyncFixturesWindow(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync fixtures job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncReportToDTO(report))
}

func (h *Handler) RunSyncLeaguesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLeaguesJob")
	defer span.End()

	if h.matchSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.matchSyncService.SyncLeaguesAndStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync leagues job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncReportToDTO(report))
}

// RunGeneratePredictionsJob is the internal trigger for the prediction batch;
// it mirrors what the in-process scheduler does on its own cadence.
func (h *Handler) RunGeneratePredictionsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunGeneratePredictionsJob")
	defer span.End()

	if h.batchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: prediction batch service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req generatePredictionsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		day, _ = time.Parse("2006-01-02", req.Date)
	}

	report, err := h.batchService.GenerateForDate(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "run generate predictions job failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
