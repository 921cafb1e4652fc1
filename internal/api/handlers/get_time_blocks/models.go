package get_time_blocks

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// parseBound принимает RFC3339 или YYYY-MM-DD (начало суток UTC)
func parseBound(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(domain.DateFormat, value, time.UTC)
}

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(tenantID uuid.UUID, from, to string) (*models.GetTimeBlocksRequest, error) {
	fromTime, err := parseBound(from)
	if err != nil {
		return nil, err
	}

	toTime, err := parseBound(to)
	if err != nil {
		return nil, err
	}

	return &models.GetTimeBlocksRequest{
		TenantID: tenantID,
		From:     fromTime,
		To:       toTime,
	}, nil
}
