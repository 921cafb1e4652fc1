package workinghours

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func TestBuildUpsert(t *testing.T) {
	wh := &domain.WorkingHours{
		ID:                    uuid.New(),
		TenantID:              uuid.New(),
		DayOfWeek:             time.Saturday,
		StartTime:             "10:00",
		EndTime:               "16:00",
		MaxConcurrentBookings: 3,
	}

	query, args, err := buildUpsert(wh)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO working_hours")
	assert.Contains(t, query, "ON CONFLICT (tenant_id, day_of_week) DO UPDATE SET")
	assert.Contains(t, query, "RETURNING id, created_at, updated_at")

	require.Len(t, args, 6)
	assert.Equal(t, wh.ID, args[0])
	assert.Equal(t, wh.TenantID, args[1])
	assert.Equal(t, 6, args[2])
	assert.Equal(t, types.TimeString("10:00"), args[3])
	assert.Equal(t, 3, args[5])
}

// driverRow отдает значения так, как их возвращает lib/pq для колонок TIME
type driverRow struct {
	id, tenantID uuid.UUID
	day          int64
	start, end   time.Time
}

func (r driverRow) Scan(dest ...interface{}) error {
	*dest[0].(*uuid.UUID) = r.id
	*dest[1].(*uuid.UUID) = r.tenantID
	*dest[2].(*int) = int(r.day)
	if err := dest[3].(sql.Scanner).Scan(r.start); err != nil {
		return err
	}
	if err := dest[4].(sql.Scanner).Scan(r.end); err != nil {
		return err
	}
	*dest[5].(*int) = 2
	return nil
}

func TestScanWorkingHours_UntilMidnight(t *testing.T) {
	zero := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	row := driverRow{
		id:       uuid.New(),
		tenantID: uuid.New(),
		day:      int64(time.Friday),
		start:    zero.Add(9 * time.Hour),
		end:      zero.Add(24 * time.Hour),
	}

	wh, err := scanWorkingHours(row)
	require.NoError(t, err)

	assert.Equal(t, time.Friday, wh.DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), wh.StartTime)
	assert.Equal(t, types.EndOfDay, wh.EndTime)
	assert.False(t, wh.IsDayOff())

	friday := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)
	iv, err := wh.WorkingInterval(friday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC), iv.Start)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), iv.End)
}

func TestScanWorkingHours_FullDayIsNotDayOff(t *testing.T) {
	zero := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)

	wh, err := scanWorkingHours(driverRow{day: int64(time.Sunday), start: zero, end: zero.Add(24 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("00:00"), wh.StartTime)
	assert.Equal(t, types.EndOfDay, wh.EndTime)
	assert.False(t, wh.IsDayOff())
}
