package domain

import (
	"time"

	"github.com/google/uuid"
)

// BufferTime represents gap minutes reserved around bookings.
// Supports two levels of configuration:
// 1. Category-specific (tenant_id, category_id)
// 2. Tenant-wide (tenant_id, NULL)
type BufferTime struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	CategoryID    *uuid.UUID // NULL = buffer for the whole tenant
	BeforeMinutes int
	AfterMinutes  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsGlobal returns true if this buffer applies to every booking of the tenant
func (b *BufferTime) IsGlobal() bool {
	return b.CategoryID == nil
}

// Before returns the buffer preceding a booking
func (b *BufferTime) Before() time.Duration {
	return time.Duration(b.BeforeMinutes) * time.Minute
}

// After returns the buffer following a booking
func (b *BufferTime) After() time.Duration {
	return time.Duration(b.AfterMinutes) * time.Minute
}

// NoBuffer используется, когда у арендатора нет глобальной настройки буфера
func NoBuffer(tenantID uuid.UUID) *BufferTime {
	return &BufferTime{TenantID: tenantID}
}
