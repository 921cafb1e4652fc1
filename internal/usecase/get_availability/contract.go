package get_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TenantClient интерфейс клиента TenantService
type TenantClient interface {
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.WorkingHours, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	// GetByTenantInRange получает блокировки, пересекающиеся с интервалом
	GetByTenantInRange(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) ([]*domain.TimeBlock, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByTenantInRange получает бронирования в любом статусе, пересекающиеся с интервалом
	GetByTenantInRange(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) ([]*domain.Booking, error)
}

// BufferRepository интерфейс репозитория буферов
type BufferRepository interface {
	GetGlobal(ctx context.Context, tenantID uuid.UUID) (*domain.BufferTime, error)
}

// TxManager выполняет чтение в одном снимке данных
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
