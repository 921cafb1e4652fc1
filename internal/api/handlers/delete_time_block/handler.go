package delete_time_block

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidTenantID    = "некорректный ID арендатора"
	msgInvalidTimeBlockID = "некорректный ID блокировки"
	msgMissingUserID      = "требуется заголовок X-User-ID"
	msgTimeBlockNotFound  = "блокировка не найдена"
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

// Handle DELETE /api/v1/tenants/{tenantId}/time-blocks/{timeBlockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/time-blocks/{id} - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	timeBlockID, err := uuid.Parse(vars["timeBlockId"])
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/time-blocks/{id} - Invalid time block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /tenants/{id}/time-blocks/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteTimeBlock(r.Context(), &models.DeleteTimeBlockRequest{
		UserID:      userID,
		TenantID:    tenantID,
		TimeBlockID: timeBlockID,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTimeBlockNotFound):
			h.logger.Warn("DELETE /tenants/{id}/time-blocks/{id} - Time block not found: tenant_id=%s, time_block_id=%s",
				tenantID, timeBlockID)
			handlers.RespondNotFound(w, msgTimeBlockNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTimeBlockID)

		default:
			h.logger.Error("DELETE /tenants/{id}/time-blocks/{id} - Failed to delete time block: time_block_id=%s, error=%v",
				timeBlockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/time-blocks/{id} - Time block deleted: tenant_id=%s, time_block_id=%s, user_id=%s",
		tenantID, timeBlockID, userID)
	handlers.RespondNoContent(w)
}
