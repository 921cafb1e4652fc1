package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// truncateToDate возвращает полночь UTC того же календарного дня
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isSameDate сравнивает календарные даты в UTC
func isSameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// busyPeriodsForDay собирает занятые интервалы, начинающиеся в день date.
// Блокировки берутся как есть, бронирования pending/confirmed расширяются на буфер.
// Интервал, переходящий через полночь, относится только к дню начала.
func busyPeriodsForDay(date time.Time, blocks []*domain.TimeBlock, bookings []*domain.Booking, buffer *domain.BufferTime) []domain.Interval {
	blockPeriods := make([]domain.Interval, 0)
	for _, block := range blocks {
		if isSameDate(block.StartDateTime, date) {
			blockPeriods = append(blockPeriods, block.Period())
		}
	}
	domain.SortByStart(blockPeriods)

	bookingPeriods := make([]domain.Interval, 0)
	for _, booking := range bookings {
		if booking.IsBlocking() && isSameDate(booking.StartDateTime, date) {
			bookingPeriods = append(bookingPeriods, booking.Period())
		}
	}
	domain.SortByStart(bookingPeriods)

	busy := make([]domain.Interval, 0, len(blockPeriods)+len(bookingPeriods))
	busy = append(busy, blockPeriods...)
	for _, period := range bookingPeriods {
		busy = append(busy, period.Expand(buffer.Before(), buffer.After()))
	}
	return busy
}

// availableForDay вычисляет свободные интервалы одного дня
func availableForDay(date time.Time, wh *domain.WorkingHours, blocks []*domain.TimeBlock, bookings []*domain.Booking, buffer *domain.BufferTime) ([]domain.Interval, error) {
	// Нет записи или выходной
	if wh == nil || wh.IsDayOff() {
		return nil, nil
	}

	working, err := wh.WorkingInterval(date)
	if err != nil {
		return nil, fmt.Errorf("invalid working hours for %s: %w", wh.DayOfWeek, err)
	}

	busy := busyPeriodsForDay(date, blocks, bookings, buffer)

	clipped := make([]domain.Interval, 0, len(busy))
	for _, period := range busy {
		if c, ok := period.Clip(working); ok {
			clipped = append(clipped, c)
		}
	}

	return domain.Merge(domain.SubtractAll(working, clipped)), nil
}

// computeRanges проходит по дням от startDate до endDate включительно.
// Контекст проверяется перед каждым днем.
func computeRanges(ctx context.Context, startDate, endDate time.Time, snap *snapshot) ([]domain.AvailableTimeRange, error) {
	result := make([]domain.Interval, 0)

	for day := truncateToDate(startDate); !day.After(truncateToDate(endDate)); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		free, err := availableForDay(day, snap.workingHours[day.Weekday()], snap.timeBlocks, snap.bookings, snap.buffer)
		if err != nil {
			return nil, err
		}
		result = append(result, free...)
	}

	domain.SortByStart(result)
	return domain.RangesFromIntervals(result), nil
}
