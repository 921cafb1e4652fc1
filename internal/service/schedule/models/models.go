package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// UpdateWorkingHoursRequest запрос на создание/обновление рабочих часов на день недели
type UpdateWorkingHoursRequest struct {
	UserID                uuid.UUID `json:"-"`
	TenantID              uuid.UUID `json:"-"`
	DayOfWeek             int       `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime             string    `json:"startTime"` // HH:MM
	EndTime               string    `json:"endTime"`   // HH:MM, равно startTime = выходной
	MaxConcurrentBookings *int      `json:"maxConcurrentBookings,omitempty"`
}

// GetTimeBlocksRequest запрос на получение блокировок за период
type GetTimeBlocksRequest struct {
	TenantID uuid.UUID
	From     time.Time
	To       time.Time
}

// CreateTimeBlockRequest запрос на создание блокировки
type CreateTimeBlockRequest struct {
	UserID            uuid.UUID  `json:"-"`
	TenantID          uuid.UUID  `json:"-"`
	StartDateTime     time.Time  `json:"startDateTime"`
	EndDateTime       time.Time  `json:"endDateTime"`
	Type              string     `json:"type"`
	Title             *string    `json:"title,omitempty"`
	RecurrencePattern *string    `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
	ExternalEventID   *string    `json:"externalEventId,omitempty"`
}

// DeleteTimeBlockRequest запрос на удаление блокировки
type DeleteTimeBlockRequest struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	TimeBlockID uuid.UUID
}

// UpdateBufferTimeRequest запрос на создание/обновление буфера
type UpdateBufferTimeRequest struct {
	UserID        uuid.UUID  `json:"-"`
	TenantID      uuid.UUID  `json:"-"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"` // NULL = глобальный буфер
	BeforeMinutes int        `json:"beforeMinutes"`
	AfterMinutes  int        `json:"afterMinutes"`
}

// Response модели

// WorkingHoursResponse рабочие часы на один день недели
type WorkingHoursResponse struct {
	ID                    *uuid.UUID `json:"id,omitempty"` // nil, если запись для дня не создана
	DayOfWeek             int        `json:"dayOfWeek"`
	StartTime             string     `json:"startTime"`
	EndTime               string     `json:"endTime"`
	IsDayOff              bool       `json:"isDayOff"`
	MaxConcurrentBookings int        `json:"maxConcurrentBookings"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// WorkingHoursListResponse недельное расписание арендатора
type WorkingHoursListResponse struct {
	TenantID     uuid.UUID              `json:"tenantId"`
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
}

// TimeBlockResponse ответ с данными блокировки
type TimeBlockResponse struct {
	ID                uuid.UUID  `json:"id"`
	TenantID          uuid.UUID  `json:"tenantId"`
	StartDateTime     time.Time  `json:"startDateTime"`
	EndDateTime       time.Time  `json:"endDateTime"`
	Type              string     `json:"type"`
	Title             *string    `json:"title,omitempty"`
	RecurrencePattern *string    `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`
	ExternalEventID   *string    `json:"externalEventId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// TimeBlockListResponse ответ со списком блокировок
type TimeBlockListResponse struct {
	TimeBlocks []TimeBlockResponse `json:"timeBlocks"`
}

// BufferTimeResponse ответ с данными буфера
type BufferTimeResponse struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenantId"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	BeforeMinutes int        `json:"beforeMinutes"`
	AfterMinutes  int        `json:"afterMinutes"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BufferTimeListResponse ответ со списком буферов
type BufferTimeListResponse struct {
	BufferTimes []BufferTimeResponse `json:"bufferTimes"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) WorkingHoursResponse {
	id := wh.ID
	updatedAt := wh.UpdatedAt
	return WorkingHoursResponse{
		ID:                    &id,
		DayOfWeek:             int(wh.DayOfWeek),
		StartTime:             wh.StartTime.String(),
		EndTime:               wh.EndTime.String(),
		IsDayOff:              wh.IsDayOff(),
		MaxConcurrentBookings: wh.MaxConcurrentBookings,
		UpdatedAt:             &updatedAt,
	}
}

// dayOff запись для дня недели без сохраненных рабочих часов
func dayOff(day time.Weekday) WorkingHoursResponse {
	return WorkingHoursResponse{
		DayOfWeek:             int(day),
		StartTime:             "00:00",
		EndTime:               "00:00",
		IsDayOff:              true,
		MaxConcurrentBookings: domain.DefaultMaxConcurrent,
	}
}

// FromDomainWorkingHoursWeek строит расписание на все 7 дней, отсутствующие дни - выходные
func FromDomainWorkingHoursWeek(tenantID uuid.UUID, hours []*domain.WorkingHours) *WorkingHoursListResponse {
	byDay := domain.WorkingHoursByDay(hours)

	resp := &WorkingHoursListResponse{
		TenantID:     tenantID,
		WorkingHours: make([]WorkingHoursResponse, 0, domain.DaysInWeek),
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if wh, ok := byDay[day]; ok {
			resp.WorkingHours = append(resp.WorkingHours, FromDomainWorkingHours(wh))
			continue
		}
		resp.WorkingHours = append(resp.WorkingHours, dayOff(day))
	}
	return resp
}

// ToDomainWorkingHours конвертирует запрос в domain модель (после валидации)
func (r *UpdateWorkingHoursRequest) ToDomainWorkingHours() *domain.WorkingHours {
	maxConcurrent := domain.DefaultMaxConcurrent
	if r.MaxConcurrentBookings != nil {
		maxConcurrent = *r.MaxConcurrentBookings
	}
	return &domain.WorkingHours{
		TenantID:              r.TenantID,
		DayOfWeek:             time.Weekday(r.DayOfWeek),
		StartTime:             types.TimeString(r.StartTime),
		EndTime:               types.TimeString(r.EndTime),
		MaxConcurrentBookings: maxConcurrent,
	}
}

// FromDomainTimeBlock конвертирует domain модель в DTO
func FromDomainTimeBlock(b *domain.TimeBlock) TimeBlockResponse {
	return TimeBlockResponse{
		ID:                b.ID,
		TenantID:          b.TenantID,
		StartDateTime:     b.StartDateTime.UTC(),
		EndDateTime:       b.EndDateTime.UTC(),
		Type:              string(b.Type),
		Title:             b.Title,
		RecurrencePattern: b.RecurrencePattern,
		RecurrenceEndDate: b.RecurrenceEndDate,
		ExternalEventID:   b.ExternalEventID,
		CreatedAt:         b.CreatedAt,
	}
}

// FromDomainTimeBlockList конвертирует список domain моделей в DTO
func FromDomainTimeBlockList(blocks []*domain.TimeBlock) *TimeBlockListResponse {
	resp := &TimeBlockListResponse{
		TimeBlocks: make([]TimeBlockResponse, 0, len(blocks)),
	}
	for _, b := range blocks {
		resp.TimeBlocks = append(resp.TimeBlocks, FromDomainTimeBlock(b))
	}
	return resp
}

// ToDomainTimeBlock конвертирует запрос в domain модель (после валидации)
func (r *CreateTimeBlockRequest) ToDomainTimeBlock() *domain.TimeBlock {
	block := &domain.TimeBlock{
		TenantID:          r.TenantID,
		StartDateTime:     r.StartDateTime.UTC(),
		EndDateTime:       r.EndDateTime.UTC(),
		Type:              domain.TimeBlockType(r.Type),
		Title:             r.Title,
		RecurrencePattern: r.RecurrencePattern,
		ExternalEventID:   r.ExternalEventID,
	}
	if block.IsRecurring() && r.RecurrenceEndDate != nil {
		end := r.RecurrenceEndDate.UTC()
		block.RecurrenceEndDate = &end
	}
	return block
}

// FromDomainBufferTime конвертирует domain модель в DTO
func FromDomainBufferTime(b *domain.BufferTime) BufferTimeResponse {
	return BufferTimeResponse{
		ID:            b.ID,
		TenantID:      b.TenantID,
		CategoryID:    b.CategoryID,
		BeforeMinutes: b.BeforeMinutes,
		AfterMinutes:  b.AfterMinutes,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBufferTimeList конвертирует список domain моделей в DTO
func FromDomainBufferTimeList(buffers []*domain.BufferTime) *BufferTimeListResponse {
	resp := &BufferTimeListResponse{
		BufferTimes: make([]BufferTimeResponse, 0, len(buffers)),
	}
	for _, b := range buffers {
		resp.BufferTimes = append(resp.BufferTimes, FromDomainBufferTime(b))
	}
	return resp
}

// ToDomainBufferTime конвертирует запрос в domain модель (после валидации)
func (r *UpdateBufferTimeRequest) ToDomainBufferTime() *domain.BufferTime {
	return &domain.BufferTime{
		TenantID:      r.TenantID,
		CategoryID:    r.CategoryID,
		BeforeMinutes: r.BeforeMinutes,
		AfterMinutes:  r.AfterMinutes,
	}
}
