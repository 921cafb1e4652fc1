package create_time_block

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// CreateTimeBlockRequest HTTP request model
type CreateTimeBlockRequest struct {
	StartDateTime     time.Time  `json:"startDateTime"`
	EndDateTime       time.Time  `json:"endDateTime"`
	Type              string     `json:"type"`
	Title             *string    `json:"title,omitempty"`
	RecurrencePattern *string    `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
	ExternalEventID   *string    `json:"externalEventId,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateTimeBlockRequest) ToServiceRequest(userID, tenantID uuid.UUID) *models.CreateTimeBlockRequest {
	return &models.CreateTimeBlockRequest{
		UserID:            userID,
		TenantID:          tenantID,
		StartDateTime:     r.StartDateTime,
		EndDateTime:       r.EndDateTime,
		Type:              r.Type,
		Title:             r.Title,
		RecurrencePattern: r.RecurrencePattern,
		RecurrenceEndDate: r.RecurrenceEndDate,
		ExternalEventID:   r.ExternalEventID,
	}
}
