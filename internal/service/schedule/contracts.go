package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.WorkingHours, error)
	Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error)
}

// TimeBlockRepository интерфейс репозитория блокировок времени
type TimeBlockRepository interface {
	GetByTenantInRange(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) ([]*domain.TimeBlock, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeBlock, error)
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// BufferRepository интерфейс репозитория буферов
type BufferRepository interface {
	GetAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.BufferTime, error)
	Upsert(ctx context.Context, buffer *domain.BufferTime) (*domain.BufferTime, error)
}

// TenantClient интерфейс клиента TenantService
type TenantClient interface {
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
}

// TxManager выполняет функцию в транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
