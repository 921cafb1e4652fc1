package update_buffer_time

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// UpdateBufferTimeRequest HTTP request model
type UpdateBufferTimeRequest struct {
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	BeforeMinutes int        `json:"beforeMinutes"`
	AfterMinutes  int        `json:"afterMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBufferTimeRequest) ToServiceRequest(userID, tenantID uuid.UUID) *models.UpdateBufferTimeRequest {
	return &models.UpdateBufferTimeRequest{
		UserID:        userID,
		TenantID:      tenantID,
		CategoryID:    r.CategoryID,
		BeforeMinutes: r.BeforeMinutes,
		AfterMinutes:  r.AfterMinutes,
	}
}
