package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeBlockType represents the reason a period is blocked
type TimeBlockType string

const (
	TimeBlockVacation              TimeBlockType = "vacation"
	TimeBlockBreak                 TimeBlockType = "break"
	TimeBlockCustom                TimeBlockType = "custom"
	TimeBlockExternalCalendarEvent TimeBlockType = "external_calendar_event"
)

// IsValid returns true for known block types
func (t TimeBlockType) IsValid() bool {
	switch t {
	case TimeBlockVacation, TimeBlockBreak, TimeBlockCustom, TimeBlockExternalCalendarEvent:
		return true
	}
	return false
}

// TimeBlock represents a period when the tenant does not accept bookings.
// Recurrence fields are metadata only: a block always covers exactly
// [StartDateTime, EndDateTime).
type TimeBlock struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	StartDateTime     time.Time
	EndDateTime       time.Time
	Type              TimeBlockType
	Title             *string
	RecurrencePattern *string
	RecurrenceEndDate *time.Time
	ExternalEventID   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Period returns the blocked interval
func (b *TimeBlock) Period() Interval {
	return Interval{Start: b.StartDateTime.UTC(), End: b.EndDateTime.UTC()}
}

// IsRecurring returns true if the block carries a recurrence pattern
func (b *TimeBlock) IsRecurring() bool {
	return b.RecurrencePattern != nil && *b.RecurrencePattern != ""
}
