package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

const (
	msgInvalidTenantID = "некорректный ID арендатора"
	msgMissingDates    = "startDate и endDate обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange    = "startDate не может быть позже endDate"
	msgRangeTooLong    = "период не может превышать 31 день"
	msgDateInPast      = "startDate не может быть в прошлом"
	msgTenantNotFound  = "арендатор не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/availability
// Query params: startDate, endDate (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tenantId из URL
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/availability - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	query := r.URL.Query()
	startDate, endDate := query.Get("startDate"), query.Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /tenants/{id}/availability - Missing dates: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(tenantID, startDate, endDate))
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/availability - Invalid date: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidRange):
			h.logger.Warn("GET /tenants/{id}/availability - Invalid range: tenant_id=%s, %s..%s", tenantID, startDate, endDate)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrRangeTooLong):
			h.logger.Warn("GET /tenants/{id}/availability - Range too long: tenant_id=%s, %s..%s", tenantID, startDate, endDate)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailability.ErrDateInPast):
			h.logger.Warn("GET /tenants/{id}/availability - Start date in past: tenant_id=%s, start=%s", tenantID, startDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/availability - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		default:
			h.logger.Error("GET /tenants/{id}/availability - Failed to compute availability: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/availability - Availability computed: tenant_id=%s, %s..%s, ranges_count=%d",
		tenantID, startDate, endDate, len(result.AvailableRanges))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
