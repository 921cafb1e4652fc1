package update_working_hours

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	DayOfWeek             *int   `json:"dayOfWeek"`
	StartTime             string `json:"startTime"`
	EndTime               string `json:"endTime"`
	MaxConcurrentBookings *int   `json:"maxConcurrentBookings,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest(userID, tenantID uuid.UUID) *models.UpdateWorkingHoursRequest {
	return &models.UpdateWorkingHoursRequest{
		UserID:                userID,
		TenantID:              tenantID,
		DayOfWeek:             *r.DayOfWeek,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		MaxConcurrentBookings: r.MaxConcurrentBookings,
	}
}
