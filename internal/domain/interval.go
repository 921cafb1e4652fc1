package domain

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval with both bounds converted to UTC
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start.UTC(), End: end.UTC()}
}

// IsEmpty returns true if the interval has no positive length
func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

// Duration returns the length of the interval, zero for empty intervals
func (i Interval) Duration() time.Duration {
	if i.IsEmpty() {
		return 0
	}
	return i.End.Sub(i.Start)
}

// Overlaps returns true if the intervals share a non-empty part
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Clip cuts the interval to bounds. ok is false when nothing is left.
func (i Interval) Clip(bounds Interval) (Interval, bool) {
	clipped := i
	if clipped.Start.Before(bounds.Start) {
		clipped.Start = bounds.Start
	}
	if clipped.End.After(bounds.End) {
		clipped.End = bounds.End
	}
	if clipped.IsEmpty() {
		return Interval{}, false
	}
	return clipped, true
}

// Expand widens the interval by before on the left and after on the right
func (i Interval) Expand(before, after time.Duration) Interval {
	return Interval{Start: i.Start.Add(-before), End: i.End.Add(after)}
}

// Equal compares bounds as instants
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// Subtract removes busy from the interval, returning up to two pieces
func (i Interval) Subtract(busy Interval) []Interval {
	if !i.Overlaps(busy) {
		return []Interval{i}
	}

	pieces := make([]Interval, 0, 2)
	if i.Start.Before(busy.Start) {
		pieces = append(pieces, Interval{Start: i.Start, End: busy.Start})
	}
	if busy.End.Before(i.End) {
		pieces = append(pieces, Interval{Start: busy.End, End: i.End})
	}
	return pieces
}

// SubtractAll removes every busy interval from base.
// The result is ordered by start when busy periods are.
func SubtractAll(base Interval, busy []Interval) []Interval {
	if base.IsEmpty() {
		return nil
	}

	available := []Interval{base}
	for _, b := range busy {
		if b.IsEmpty() {
			continue
		}
		next := make([]Interval, 0, len(available)+1)
		for _, a := range available {
			next = append(next, a.Subtract(b)...)
		}
		available = next
		if len(available) == 0 {
			break
		}
	}
	return available
}

// SortByStart sorts intervals in place by start, then by end
func SortByStart(intervals []Interval) {
	sort.SliceStable(intervals, func(a, b int) bool {
		if intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].End.Before(intervals[b].End)
		}
		return intervals[a].Start.Before(intervals[b].Start)
	})
}

// Merge joins overlapping and touching intervals. The input is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	SortByStart(sorted)

	merged := make([]Interval, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if cur.Overlaps(next) || cur.End.Equal(next.Start) {
			if next.Start.Before(cur.Start) {
				cur.Start = next.Start
			}
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}
