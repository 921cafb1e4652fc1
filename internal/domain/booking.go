package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a reservation owned by the booking service.
// Read here only to find busy periods.
type Booking struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ServiceID     uuid.UUID
	CustomerID    uuid.UUID
	StartDateTime time.Time
	EndDateTime   time.Time
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBlocking returns true if the booking occupies its time slot
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Period returns the booked interval
func (b *Booking) Period() Interval {
	return Interval{Start: b.StartDateTime.UTC(), End: b.EndDateTime.UTC()}
}
