package get_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// parseDate парсит дату в формате YYYY-MM-DD как полночь UTC
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}

	date, err := time.ParseInLocation(domain.DateFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format", ErrInvalidInput, field)
	}

	return date, nil
}

// validateRequest валидирует входные данные и возвращает границы периода
func validateRequest(req *Request, now time.Time) (time.Time, time.Time, error) {
	if req.TenantID == uuid.Nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if err := validateRange(startDate, endDate, now); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return startDate, endDate, nil
}

// validateRange проверяет порядок дат, длину периода и что он не начинается в прошлом
func validateRange(startDate, endDate, now time.Time) error {
	if endDate.Before(startDate) {
		return ErrInvalidRange
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLong, days, domain.MaxAvailabilityRangeDays)
	}

	if startDate.Before(truncateToDate(now)) {
		return ErrDateInPast
	}

	return nil
}
