package get_time_blocks

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidTenantID = "некорректный ID арендатора"
	msgMissingPeriod   = "параметры from и to обязательны"
	msgInvalidPeriod   = "некорректный формат периода, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidData     = "некорректный период"
	msgTenantNotFound  = "арендатор не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/time-blocks
// Query params: from, to (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(mux.Vars(r)["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/time-blocks - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /tenants/{id}/time-blocks - Missing period: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	serviceReq, err := ToServiceRequest(tenantID, from, to)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/time-blocks - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetTimeBlocks(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/time-blocks - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/time-blocks - Invalid period: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /tenants/{id}/time-blocks - Failed to get time blocks: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/time-blocks - Time blocks retrieved: tenant_id=%s, count=%d",
		tenantID, len(result.TimeBlocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
