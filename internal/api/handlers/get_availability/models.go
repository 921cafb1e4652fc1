package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TenantID        uuid.UUID            `json:"tenantId"`
	StartDate       string               `json:"startDate"`
	EndDate         string               `json:"endDate"`
	AvailableRanges []AvailableTimeRange `json:"availableRanges"`
}

// AvailableTimeRange свободный интервал, границы в RFC3339 UTC
type AvailableTimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	ranges := make([]AvailableTimeRange, len(resp.AvailableRanges))
	for i, rng := range resp.AvailableRanges {
		ranges[i] = AvailableTimeRange{
			Start: rng.Start.UTC().Format(time.RFC3339),
			End:   rng.End.UTC().Format(time.RFC3339),
		}
	}

	return &AvailabilityResponse{
		TenantID:        resp.TenantID,
		StartDate:       resp.StartDate.Format(domain.DateFormat),
		EndDate:         resp.EndDate.Format(domain.DateFormat),
		AvailableRanges: ranges,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров, даты разбирает use case
func ToUseCaseRequest(tenantID uuid.UUID, startDate, endDate string) *getAvailability.Request {
	return &getAvailability.Request{
		TenantID:  tenantID,
		StartDate: startDate,
		EndDate:   endDate,
	}
}
