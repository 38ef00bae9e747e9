package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/scorewise/predictions-api/internal/domain/user"
	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/scorewise/predictions-api/internal/usecase"
)

// MembershipChecker resolves whether a user currently holds an active VIP
// subscription.
type MembershipChecker interface {
	IsVIPActive(ctx context.Context, userID string) (bool, error)
}

type Handler struct {
	predictionService *usecase.PredictionService
	batchService      *usecase.PredictionBatchService
	matchService      *usecase.MatchService
	standingService   *usecase.StandingService
	matchSyncService  *usecase.MatchSyncService
	membership        MembershipChecker
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	predictionService *usecase.PredictionService,
	batchService *usecase.PredictionBatchService,
	matchService *usecase.MatchService,
	standingService *usecase.StandingService,
	matchSyncService *usecase.MatchSyncService,
	membership MembershipChecker,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		predictionService: predictionService,
		batchService:      batchService,
		matchService:      matchService,
		standingService:   standingService,
		matchSyncService:  matchSyncService,
		membership:        membership,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requireAdmin(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	if !principal.IsAdmin() {
		return user.Principal{}, fmt.Errorf("%w: admin role is required", usecase.ErrForbidden)
	}
	return principal, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
