package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bufferRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/buffer"
	timeBlockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeblock"
	workingHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/workinghours"
	tenantClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/tenantservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис управления расписанием арендатора:
// рабочие часы, блокировки времени и буферы между бронированиями
type Service struct {
	workingHoursRepo WorkingHoursRepository
	timeBlockRepo    TimeBlockRepository
	bufferRepo       BufferRepository
	tenantClient     TenantClient
	txManager        TxManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	workingHoursRepo WorkingHoursRepository,
	timeBlockRepo TimeBlockRepository,
	bufferRepo BufferRepository,
	tenantClient TenantClient,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		timeBlockRepo:    timeBlockRepo,
		bufferRepo:       bufferRepo,
		tenantClient:     tenantClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// ensureTenant проверяет, что арендатор существует
func (s *Service) ensureTenant(ctx context.Context, op string, tenantID uuid.UUID) error {
	if _, err := s.tenantClient.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			s.logger.Warn("%s: tenant id=%s not found", op, tenantID)
			return ErrTenantNotFound
		}
		s.logger.Error("%s: failed to get tenant id=%s: %v", op, tenantID, err)
		return fmt.Errorf("%w: %s - get tenant: %v", ErrInternal, op, err)
	}
	return nil
}

// GetWorkingHours получает недельное расписание арендатора (7 дней, по возрастанию дня недели)
// Публичный метод
func (s *Service) GetWorkingHours(ctx context.Context, tenantID uuid.UUID) (*models.WorkingHoursListResponse, error) {
	s.logger.Info("GetWorkingHours: fetching working hours for tenant=%s", tenantID)

	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}
	if err := s.ensureTenant(ctx, "GetWorkingHours", tenantID); err != nil {
		return nil, err
	}

	hours, err := s.workingHoursRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWorkingHours: tenant=%s has %d configured days", tenantID, len(hours))
	return models.FromDomainWorkingHoursWeek(tenantID, hours), nil
}

// UpdateWorkingHours создает или обновляет рабочие часы на один день недели
// Требует X-User-ID
func (s *Service) UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateWorkingHours: tenant=%s, day=%d, %s-%s by user=%s",
		req.TenantID, req.DayOfWeek, req.StartTime, req.EndTime, req.UserID)

	// 1. Валидируем входные данные
	if err := validateWorkingHours(req); err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем арендатора
	if err := s.ensureTenant(ctx, "UpdateWorkingHours", req.TenantID); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.workingHoursRepo.Upsert(ctx, req.ToDomainWorkingHours())
	if err != nil {
		if errors.Is(err, workingHoursRepo.ErrConstraintViolation) {
			s.logger.Warn("UpdateWorkingHours: rejected by database constraints: %v", err)
			return nil, fmt.Errorf("%w: working hours violate constraints", ErrInvalidInput)
		}
		s.logger.Error("UpdateWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: saved working hours id=%s", saved.ID)
	resp := models.FromDomainWorkingHours(saved)
	return &resp, nil
}

// GetTimeBlocks получает блокировки арендатора, пересекающиеся с периодом [from, to)
// Публичный метод
func (s *Service) GetTimeBlocks(ctx context.Context, req *models.GetTimeBlocksRequest) (*models.TimeBlockListResponse, error) {
	s.logger.Info("GetTimeBlocks: tenant=%s, from=%s, to=%s", req.TenantID, req.From, req.To)

	if err := validateTimeBlocksRange(req); err != nil {
		s.logger.Warn("GetTimeBlocks: validation failed: %v", err)
		return nil, err
	}
	if err := s.ensureTenant(ctx, "GetTimeBlocks", req.TenantID); err != nil {
		return nil, err
	}

	blocks, err := s.timeBlockRepo.GetByTenantInRange(ctx, req.TenantID, domain.NewInterval(req.From, req.To))
	if err != nil {
		s.logger.Error("GetTimeBlocks: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTimeBlocks - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTimeBlocks: found %d time blocks for tenant=%s", len(blocks), req.TenantID)
	return models.FromDomainTimeBlockList(blocks), nil
}

// CreateTimeBlock создает блокировку времени
// Требует X-User-ID
func (s *Service) CreateTimeBlock(ctx context.Context, req *models.CreateTimeBlockRequest) (*models.TimeBlockResponse, error) {
	s.logger.Info("CreateTimeBlock: tenant=%s, type=%s, %s - %s by user=%s",
		req.TenantID, req.Type, req.StartDateTime, req.EndDateTime, req.UserID)

	// 1. Валидируем входные данные
	if err := validateTimeBlock(req); err != nil {
		s.logger.Warn("CreateTimeBlock: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем арендатора
	if err := s.ensureTenant(ctx, "CreateTimeBlock", req.TenantID); err != nil {
		return nil, err
	}

	// 3. Создаем
	created, err := s.timeBlockRepo.Create(ctx, req.ToDomainTimeBlock())
	if err != nil {
		if errors.Is(err, timeBlockRepo.ErrConstraintViolation) {
			s.logger.Warn("CreateTimeBlock: rejected by database constraints: %v", err)
			return nil, fmt.Errorf("%w: time block violates constraints", ErrInvalidInput)
		}
		if errors.Is(err, timeBlockRepo.ErrDuplicateExternalEvent) {
			s.logger.Warn("CreateTimeBlock: external event %v already imported for tenant=%s", req.ExternalEventID, req.TenantID)
			return nil, fmt.Errorf("%w: externalEventId already imported", ErrInvalidInput)
		}
		s.logger.Error("CreateTimeBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeBlock: successfully created time block id=%s", created.ID)
	resp := models.FromDomainTimeBlock(created)
	return &resp, nil
}

// DeleteTimeBlock удаляет блокировку арендатора
// Требует X-User-ID. Блокировка другого арендатора считается ненайденной.
func (s *Service) DeleteTimeBlock(ctx context.Context, req *models.DeleteTimeBlockRequest) error {
	s.logger.Info("DeleteTimeBlock: tenant=%s, time block id=%s by user=%s", req.TenantID, req.TimeBlockID, req.UserID)

	if err := validateTenantID(req.TenantID); err != nil {
		return err
	}
	if req.TimeBlockID == uuid.Nil {
		return fmt.Errorf("%w: timeBlockId is required", ErrInvalidInput)
	}

	// Проверка владельца и удаление в одной транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		block, err := s.timeBlockRepo.GetByID(ctx, req.TimeBlockID)
		if err != nil {
			if errors.Is(err, timeBlockRepo.ErrTimeBlockNotFound) {
				s.logger.Warn("DeleteTimeBlock: time block id=%s not found", req.TimeBlockID)
				return ErrTimeBlockNotFound
			}
			s.logger.Error("DeleteTimeBlock: repository error for id=%s: %v", req.TimeBlockID, err)
			return fmt.Errorf("%w: DeleteTimeBlock - get time block: %v", ErrInternal, err)
		}

		if block.TenantID != req.TenantID {
			s.logger.Warn("DeleteTimeBlock: time block id=%s belongs to tenant=%s, not %s",
				req.TimeBlockID, block.TenantID, req.TenantID)
			return ErrTimeBlockNotFound
		}

		if err := s.timeBlockRepo.Delete(ctx, req.TenantID, req.TimeBlockID); err != nil {
			if errors.Is(err, timeBlockRepo.ErrTimeBlockNotFound) {
				return ErrTimeBlockNotFound
			}
			s.logger.Error("DeleteTimeBlock: repository error for id=%s: %v", req.TimeBlockID, err)
			return fmt.Errorf("%w: DeleteTimeBlock - delete: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeBlockNotFound) || errors.Is(err, ErrInternal) {
			return err
		}
		s.logger.Error("DeleteTimeBlock: transaction error for id=%s: %v", req.TimeBlockID, err)
		return fmt.Errorf("%w: DeleteTimeBlock - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeBlock: successfully deleted time block id=%s", req.TimeBlockID)
	return nil
}

// GetBufferTimes получает все буферы арендатора (глобальный и по категориям)
// Публичный метод
func (s *Service) GetBufferTimes(ctx context.Context, tenantID uuid.UUID) (*models.BufferTimeListResponse, error) {
	s.logger.Info("GetBufferTimes: fetching buffer times for tenant=%s", tenantID)

	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}
	if err := s.ensureTenant(ctx, "GetBufferTimes", tenantID); err != nil {
		return nil, err
	}

	buffers, err := s.bufferRepo.GetAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetBufferTimes: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetBufferTimes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBufferTimeList(buffers), nil
}

// UpdateBufferTime создает или обновляет буфер (глобальный, если categoryId не указан)
// Требует X-User-ID
func (s *Service) UpdateBufferTime(ctx context.Context, req *models.UpdateBufferTimeRequest) (*models.BufferTimeResponse, error) {
	s.logger.Info("UpdateBufferTime: tenant=%s, category=%v, before=%d, after=%d by user=%s",
		req.TenantID, req.CategoryID, req.BeforeMinutes, req.AfterMinutes, req.UserID)

	// 1. Валидируем входные данные
	if err := validateBufferTime(req); err != nil {
		s.logger.Warn("UpdateBufferTime: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем арендатора
	if err := s.ensureTenant(ctx, "UpdateBufferTime", req.TenantID); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.bufferRepo.Upsert(ctx, req.ToDomainBufferTime())
	if err != nil {
		if errors.Is(err, bufferRepo.ErrConstraintViolation) {
			s.logger.Warn("UpdateBufferTime: rejected by database constraints: %v", err)
			return nil, fmt.Errorf("%w: buffer time violates constraints", ErrInvalidInput)
		}
		s.logger.Error("UpdateBufferTime: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateBufferTime - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBufferTime: saved buffer time id=%s", saved.ID)
	resp := models.FromDomainBufferTime(saved)
	return &resp, nil
}
