package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступного времени
type Request struct {
	TenantID  uuid.UUID
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	TenantID        uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	AvailableRanges []domain.AvailableTimeRange
}

// snapshot данные арендатора, прочитанные в одной транзакции
type snapshot struct {
	workingHours map[time.Weekday]*domain.WorkingHours
	timeBlocks   []*domain.TimeBlock
	bookings     []*domain.Booking
	buffer       *domain.BufferTime
}
