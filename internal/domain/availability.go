package domain

import "time"

// AvailableTimeRange represents a free interval [Start, End) in UTC
type AvailableTimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the range
func (r AvailableTimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// RangesFromIntervals converts free intervals into output ranges
func RangesFromIntervals(intervals []Interval) []AvailableTimeRange {
	ranges := make([]AvailableTimeRange, 0, len(intervals))
	for _, iv := range intervals {
		ranges = append(ranges, AvailableTimeRange{Start: iv.Start, End: iv.End})
	}
	return ranges
}

// Tenant represents a business account known to the tenant service
type Tenant struct {
	ID       string
	Name     string
	IsActive bool
}
