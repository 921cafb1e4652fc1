package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WorkingHours represents the opening hours of a tenant for one day of the week
type WorkingHours struct {
	ID                    uuid.UUID
	TenantID              uuid.UUID
	DayOfWeek             time.Weekday // Sunday = 0 ... Saturday = 6
	StartTime             types.TimeString
	EndTime               types.TimeString
	MaxConcurrentBookings int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsDayOff returns true if the tenant does not work on this day
func (w *WorkingHours) IsDayOff() bool {
	return w.StartTime == w.EndTime
}

// WorkingInterval returns working hours anchored on the given UTC date
func (w *WorkingHours) WorkingInterval(date time.Time) (Interval, error) {
	start, err := w.StartTime.On(date)
	if err != nil {
		return Interval{}, err
	}
	end, err := w.EndTime.On(date)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// WorkingHoursByDay indexes working hours by day of week, the last row wins
func WorkingHoursByDay(hours []*WorkingHours) map[time.Weekday]*WorkingHours {
	byDay := make(map[time.Weekday]*WorkingHours, len(hours))
	for _, wh := range hours {
		if wh == nil {
			continue
		}
		byDay[wh.DayOfWeek] = wh
	}
	return byDay
}
