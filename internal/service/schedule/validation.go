package schedule

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func validateTenantID(tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}
	return nil
}

// validateWorkingHours проверяет день недели, формат времени и лимит параллельных бронирований
func validateWorkingHours(req *models.UpdateWorkingHoursRequest) error {
	if err := validateTenantID(req.TenantID); err != nil {
		return err
	}

	if req.DayOfWeek < int(time.Sunday) || req.DayOfWeek > int(time.Saturday) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil || start == types.EndOfDay {
		return fmt.Errorf("%w: startTime must be in HH:MM format", ErrInvalidInput)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime must be in HH:MM format", ErrInvalidInput)
	}

	// end == start означает выходной
	if end.IsBefore(start) {
		return fmt.Errorf("%w: endTime must not be before startTime", ErrInvalidInput)
	}

	if req.MaxConcurrentBookings != nil {
		if *req.MaxConcurrentBookings < domain.MinConcurrentBookings || *req.MaxConcurrentBookings > domain.MaxConcurrentBookings {
			return fmt.Errorf("%w: maxConcurrentBookings must be between %d and %d",
				ErrInvalidInput, domain.MinConcurrentBookings, domain.MaxConcurrentBookings)
		}
	}

	return nil
}

// validateTimeBlocksRange проверяет период выборки блокировок
func validateTimeBlocksRange(req *models.GetTimeBlocksRequest) error {
	if err := validateTenantID(req.TenantID); err != nil {
		return err
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > time.Duration(domain.MaxTimeBlocksListDays)*24*time.Hour {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, domain.MaxTimeBlocksListDays)
	}

	return nil
}

// validateTimeBlock проверяет тип, границы и необязательные поля блокировки
func validateTimeBlock(req *models.CreateTimeBlockRequest) error {
	if err := validateTenantID(req.TenantID); err != nil {
		return err
	}

	if !domain.TimeBlockType(req.Type).IsValid() {
		return fmt.Errorf("%w: unknown time block type %q", ErrInvalidInput, req.Type)
	}

	if req.StartDateTime.IsZero() || req.EndDateTime.IsZero() {
		return fmt.Errorf("%w: startDateTime and endDateTime are required", ErrInvalidInput)
	}

	if !req.EndDateTime.After(req.StartDateTime) {
		return fmt.Errorf("%w: endDateTime must be after startDateTime", ErrInvalidInput)
	}

	if req.Title != nil && utf8.RuneCountInString(*req.Title) > domain.MaxTimeBlockTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTimeBlockTitleLength)
	}

	if req.RecurrencePattern != nil && len(*req.RecurrencePattern) > domain.MaxRecurrencePatternLength {
		return fmt.Errorf("%w: recurrencePattern must not exceed %d characters", ErrInvalidInput, domain.MaxRecurrencePatternLength)
	}

	if req.RecurrenceEndDate != nil && !req.RecurrenceEndDate.After(req.StartDateTime) {
		return fmt.Errorf("%w: recurrenceEndDate must be after startDateTime", ErrInvalidInput)
	}

	if req.ExternalEventID != nil && len(*req.ExternalEventID) > domain.MaxExternalEventIDLength {
		return fmt.Errorf("%w: externalEventId must not exceed %d characters", ErrInvalidInput, domain.MaxExternalEventIDLength)
	}

	return nil
}

// validateBufferTime проверяет диапазон минут буфера
func validateBufferTime(req *models.UpdateBufferTimeRequest) error {
	if err := validateTenantID(req.TenantID); err != nil {
		return err
	}

	for field, value := range map[string]int{"beforeMinutes": req.BeforeMinutes, "afterMinutes": req.AfterMinutes} {
		if value < domain.MinBufferMinutes || value > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: %s must be between %d and %d",
				ErrInvalidInput, field, domain.MinBufferMinutes, domain.MaxBufferMinutes)
		}
	}

	if req.CategoryID != nil && *req.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: categoryId must not be nil UUID", ErrInvalidInput)
	}

	return nil
}
