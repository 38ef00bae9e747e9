package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/scorewise/predictions-api/internal/domain/prediction"
	"github.com/scorewise/predictions-api/internal/usecase"
)

// ListPredictions serves the public read path for the "all", "banker" and
// "surprise" categories. The VIP category is routed separately behind auth;
// requesting it here yields 403 from the service.
func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictions")
	defer span.End()

	category := strings.ToLower(strings.TrimSpace(r.PathValue("category")))
	page, limit, includePast, err := parseListQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := h.predictionService.ListByCategory(ctx, usecase.ListPredictionsInput{
		Category:    category,
		IncludeVIP:  false,
		IncludePast: includePast,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionListToDTO(list))
}

// ListVIPPredictions requires an authenticated caller with an active VIP
// membership. Admins bypass the membership check.
func (h *Handler) ListVIPPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVIPPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if !principal.IsAdmin() {
		active, err := h.membership.IsVIPActive(ctx, principal.UserID)
		if err != nil {
			h.logger.WarnContext(ctx, "vip membership check failed", "user_id", principal.UserID, "error", err)
			writeError(ctx, w, err)
			return
		}
		if !active {
			writeError(ctx, w, fmt.Errorf("%w: an active VIP membership is required", usecase.ErrForbidden))
			return
		}
	}

	page, limit, includePast, err := parseListQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := h.predictionService.ListByCategory(ctx, usecase.ListPredictionsInput{
		Category:    prediction.TypeVIP,
		IncludeVIP:  true,
		IncludePast: includePast,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list vip predictions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionListToDTO(list))
}

type generatePredictionsRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) GeneratePredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GeneratePredictions")
	defer span.End()

	principal, err := requireAdmin(ctx)
	if err != nil {
		writeError(ctx, w, err)
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
		h.logger.ErrorContext(ctx, "generate predictions failed", "user_id", principal.UserID, "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	id := strings.TrimSpace(r.PathValue("predictionID"))
	item, err := h.predictionService.GetByID(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction failed", "prediction_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(*item))
}

type updatePredictionResultRequest struct {
	Status    string `json:"status" validate:"required"`
	HomeScore *int   `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore *int   `json:"away_score" validate:"omitempty,gte=0"`
}

func (h *Handler) UpdatePredictionResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePredictionResult")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePredictionResultRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	id := strings.TrimSpace(r.PathValue("predictionID"))
	if err := h.predictionService.UpdateResult(ctx, id, req.Status, req.HomeScore, req.AwayScore); err != nil {
		h.logger.WarnContext(ctx, "update prediction result failed", "prediction_id", id, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

func (h *Handler) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePrediction")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	id := strings.TrimSpace(r.PathValue("predictionID"))
	if err := h.predictionService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete prediction failed", "prediction_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func parseListQuery(r *http.Request) (page, limit int, includePast bool, err error) {
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, false, fmt.Errorf("%w: invalid page %q", usecase.ErrInvalidInput, raw)
		}
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, false, fmt.Errorf("%w: invalid limit %q", usecase.ErrInvalidInput, raw)
		}
	}
	// Both spellings are accepted; older consumers send camelCase.
	raw := strings.TrimSpace(query.Get("include_past"))
	if raw == "" {
		raw = strings.TrimSpace(query.Get("includePast"))
	}
	if raw != "" {
		includePast, err = strconv.ParseBool(raw)
		if err != nil {
			return 0, 0, false, fmt.Errorf("%w: invalid include_past %q", usecase.ErrInvalidInput, raw)
		}
	}

	return page, limit, includePast, nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
