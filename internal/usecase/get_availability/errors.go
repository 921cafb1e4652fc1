package get_availability

import "errors"

var (
	// ErrTenantNotFound возвращается, когда арендатор не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidRange возвращается, когда startDate позже endDate
	ErrInvalidRange = errors.New("startDate must not be after endDate")

	// ErrRangeTooLong возвращается, когда период длиннее MaxAvailabilityRangeDays
	ErrRangeTooLong = errors.New("date range is too long")

	// ErrDateInPast возвращается, когда startDate раньше сегодняшнего дня
	ErrDateInPast = errors.New("startDate is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
