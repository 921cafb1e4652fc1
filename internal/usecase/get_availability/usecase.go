package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bufferRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/buffer"
	tenantClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/tenantservice"
)

// UseCase use case для вычисления свободного времени арендатора
type UseCase struct {
	tenantClient     TenantClient
	workingHoursRepo WorkingHoursRepository
	timeBlockRepo    TimeBlockRepository
	bookingRepo      BookingRepository
	bufferRepo       BufferRepository
	txManager        TxManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenantClient TenantClient,
	workingHoursRepo WorkingHoursRepository,
	timeBlockRepo TimeBlockRepository,
	bookingRepo BookingRepository,
	bufferRepo BufferRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantClient:     tenantClient,
		workingHoursRepo: workingHoursRepo,
		timeBlockRepo:    timeBlockRepo,
		bookingRepo:      bookingRepo,
		bufferRepo:       bufferRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute валидирует запрос и вычисляет свободные интервалы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%s, startDate=%s, endDate=%s", req.TenantID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	startDate, endDate, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисление
	ranges, err := uc.ComputeAvailableRanges(ctx, req.TenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailability: found %d ranges for tenant=%s", len(ranges), req.TenantID)

	return &Response{
		TenantID:        req.TenantID,
		StartDate:       startDate,
		EndDate:         endDate,
		AvailableRanges: ranges,
	}, nil
}

// ComputeAvailableRanges вычисляет свободные интервалы по дням от startDate до endDate включительно.
// startDate <= endDate проверяет вызывающий. Обе даты приводятся к полуночи UTC.
func (uc *UseCase) ComputeAvailableRanges(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) ([]domain.AvailableTimeRange, error) {
	startDate = truncateToDate(startDate)
	endDate = truncateToDate(endDate)

	// 1. Проверяем существование арендатора
	if _, err := uc.tenantClient.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailability: tenant id=%s not found", tenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailability: failed to get tenant id=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ComputeAvailableRanges - get tenant: %v", ErrInternal, err)
	}

	// 2. Читаем расписание одним снимком
	snap, err := uc.loadSnapshot(ctx, tenantID, domain.NewInterval(startDate, endDate.AddDate(0, 0, 1)))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load schedule for tenant=%s: %v", tenantID, err)
		return nil, err
	}

	// 3. Вычисляем свободное время по дням
	ranges, err := computeRanges(ctx, startDate, endDate, snap)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		uc.logger.Error("GetAvailability: failed to compute ranges for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ComputeAvailableRanges - compute: %v", ErrInternal, err)
	}

	return ranges, nil
}

// loadSnapshot читает рабочие часы, блокировки, бронирования и буфер в read-only транзакции
func (uc *UseCase) loadSnapshot(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) (*snapshot, error) {
	snap := &snapshot{}

	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		hours, err := uc.workingHoursRepo.GetByTenant(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("%w: loadSnapshot - get working hours: %v", ErrInternal, err)
		}
		snap.workingHours = domain.WorkingHoursByDay(hours)

		snap.timeBlocks, err = uc.timeBlockRepo.GetByTenantInRange(ctx, tenantID, rng)
		if err != nil {
			return fmt.Errorf("%w: loadSnapshot - get time blocks: %v", ErrInternal, err)
		}

		snap.bookings, err = uc.bookingRepo.GetByTenantInRange(ctx, tenantID, rng)
		if err != nil {
			return fmt.Errorf("%w: loadSnapshot - get bookings: %v", ErrInternal, err)
		}

		// Если глобального буфера нет, используем (0, 0)
		snap.buffer, err = uc.bufferRepo.GetGlobal(ctx, tenantID)
		if errors.Is(err, bufferRepo.ErrBufferNotFound) {
			snap.buffer = domain.NoBuffer(tenantID)
			err = nil
		}
		if err != nil {
			return fmt.Errorf("%w: loadSnapshot - get buffer: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loadSnapshot - transaction: %v", ErrInternal, err)
	}

	return snap, nil
}
