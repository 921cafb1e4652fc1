package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bufferRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/buffer"
	timeBlockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeblock"
	workingHoursRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/workinghours"
	tenantClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/tenantservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeTenants struct {
	err   error
	calls int
}

func (f *fakeTenants) GetTenant(_ context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Tenant{ID: tenantID.String(), IsActive: true}, nil
}

type fakeWorkingHours struct {
	hours     []*domain.WorkingHours
	err       error
	upserted  *domain.WorkingHours
	upsertErr error
}

func (f *fakeWorkingHours) GetByTenant(context.Context, uuid.UUID) ([]*domain.WorkingHours, error) {
	return f.hours, f.err
}

func (f *fakeWorkingHours) Upsert(_ context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	saved := *wh
	saved.ID = uuid.New()
	saved.UpdatedAt = time.Now()
	f.upserted = &saved
	return &saved, nil
}

type fakeTimeBlocks struct {
	blocks    []*domain.TimeBlock
	rng       domain.Interval
	byID      map[uuid.UUID]*domain.TimeBlock
	created   *domain.TimeBlock
	createErr error
	deleted   []uuid.UUID
	deleteErr error
	getErr    error
}

func (f *fakeTimeBlocks) GetByTenantInRange(_ context.Context, _ uuid.UUID, rng domain.Interval) ([]*domain.TimeBlock, error) {
	f.rng = rng
	return f.blocks, f.getErr
}

func (f *fakeTimeBlocks) GetByID(_ context.Context, id uuid.UUID) (*domain.TimeBlock, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, timeBlockRepo.ErrTimeBlockNotFound
	}
	return b, nil
}

func (f *fakeTimeBlocks) Create(_ context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *block
	saved.ID = uuid.New()
	saved.CreatedAt = time.Now()
	f.created = &saved
	return &saved, nil
}

func (f *fakeTimeBlocks) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBuffers struct {
	buffers   []*domain.BufferTime
	err       error
	upserted  *domain.BufferTime
	upsertErr error
}

func (f *fakeBuffers) GetAllByTenant(context.Context, uuid.UUID) ([]*domain.BufferTime, error) {
	return f.buffers, f.err
}

func (f *fakeBuffers) Upsert(_ context.Context, b *domain.BufferTime) (*domain.BufferTime, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	saved := *b
	saved.ID = uuid.New()
	f.upserted = &saved
	return &saved, nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	tenants *fakeTenants
	hours   *fakeWorkingHours
	blocks  *fakeTimeBlocks
	buffers *fakeBuffers
	tx      *fakeTxManager
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		tenants: &fakeTenants{},
		hours:   &fakeWorkingHours{},
		blocks:  &fakeTimeBlocks{byID: map[uuid.UUID]*domain.TimeBlock{}},
		buffers: &fakeBuffers{},
		tx:      &fakeTxManager{},
	}
	f.svc = NewService(f.hours, f.blocks, f.buffers, f.tenants, f.tx, nopLogger{})
	return f
}

func intPtr(v int) *int { return &v }

func TestService_GetWorkingHours(t *testing.T) {
	tenantID := uuid.New()

	t.Run("full week with days off", func(t *testing.T) {
		f := newFixture()
		f.hours.hours = []*domain.WorkingHours{
			{ID: uuid.New(), TenantID: tenantID, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "18:00", MaxConcurrentBookings: 2},
			{ID: uuid.New(), TenantID: tenantID, DayOfWeek: time.Saturday, StartTime: "10:00", EndTime: "10:00", MaxConcurrentBookings: 1},
		}

		resp, err := f.svc.GetWorkingHours(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, resp.TenantID)
		require.Len(t, resp.WorkingHours, domain.DaysInWeek)

		for i, wh := range resp.WorkingHours {
			assert.Equal(t, i, wh.DayOfWeek)
		}

		assert.Nil(t, resp.WorkingHours[0].ID)
		assert.True(t, resp.WorkingHours[0].IsDayOff)

		monday := resp.WorkingHours[1]
		require.NotNil(t, monday.ID)
		assert.Equal(t, "09:00", monday.StartTime)
		assert.Equal(t, "18:00", monday.EndTime)
		assert.False(t, monday.IsDayOff)
		assert.Equal(t, 2, monday.MaxConcurrentBookings)

		assert.True(t, resp.WorkingHours[6].IsDayOff)
		assert.NotNil(t, resp.WorkingHours[6].ID)
	})

	t.Run("tenant not found", func(t *testing.T) {
		f := newFixture()
		f.tenants.err = tenantClient.ErrTenantNotFound

		_, err := f.svc.GetWorkingHours(context.Background(), tenantID)
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("tenant service failure", func(t *testing.T) {
		f := newFixture()
		f.tenants.err = tenantClient.ErrInternal

		_, err := f.svc.GetWorkingHours(context.Background(), tenantID)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture()
		f.hours.err = errors.New("connection reset")

		_, err := f.svc.GetWorkingHours(context.Background(), tenantID)
		assert.ErrorIs(t, err, ErrInternal)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("nil tenant", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetWorkingHours(context.Background(), uuid.Nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.tenants.calls)
	})
}

func TestService_UpdateWorkingHours(t *testing.T) {
	tenantID := uuid.New()

	t.Run("defaults max concurrent bookings", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
			UserID:    uuid.New(),
			TenantID:  tenantID,
			DayOfWeek: int(time.Wednesday),
			StartTime: "08:30",
			EndTime:   "24:00",
		})
		require.NoError(t, err)
		require.NotNil(t, f.hours.upserted)

		assert.Equal(t, tenantID, f.hours.upserted.TenantID)
		assert.Equal(t, time.Wednesday, f.hours.upserted.DayOfWeek)
		assert.Equal(t, types.TimeString("08:30"), f.hours.upserted.StartTime)
		assert.Equal(t, types.EndOfDay, f.hours.upserted.EndTime)
		assert.Equal(t, domain.DefaultMaxConcurrent, f.hours.upserted.MaxConcurrentBookings)

		assert.Equal(t, int(time.Wednesday), resp.DayOfWeek)
		assert.False(t, resp.IsDayOff)
	})

	t.Run("validation error skips tenant lookup", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
			TenantID:  tenantID,
			DayOfWeek: 7,
			StartTime: "09:00",
			EndTime:   "18:00",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.tenants.calls)
		assert.Nil(t, f.hours.upserted)
	})

	t.Run("constraint violation", func(t *testing.T) {
		f := newFixture()
		f.hours.upsertErr = workingHoursRepo.ErrConstraintViolation

		_, err := f.svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
			TenantID:              tenantID,
			DayOfWeek:             1,
			StartTime:             "09:00",
			EndTime:               "18:00",
			MaxConcurrentBookings: intPtr(3),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture()
		f.hours.upsertErr = errors.New("timeout")

		_, err := f.svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
			TenantID:  tenantID,
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "18:00",
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetTimeBlocks(t *testing.T) {
	tenantID := uuid.New()
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	f := newFixture()
	f.blocks.blocks = []*domain.TimeBlock{
		{ID: uuid.New(), TenantID: tenantID, StartDateTime: from.Add(10 * time.Hour), EndDateTime: from.Add(11 * time.Hour), Type: domain.TimeBlockBreak},
	}

	resp, err := f.svc.GetTimeBlocks(context.Background(), &models.GetTimeBlocksRequest{TenantID: tenantID, From: from, To: to})
	require.NoError(t, err)
	require.Len(t, resp.TimeBlocks, 1)
	assert.Equal(t, "break", resp.TimeBlocks[0].Type)
	assert.Equal(t, domain.NewInterval(from, to), f.blocks.rng)

	_, err = f.svc.GetTimeBlocks(context.Background(), &models.GetTimeBlocksRequest{TenantID: tenantID, From: to, To: from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CreateTimeBlock(t *testing.T) {
	tenantID := uuid.New()
	start := time.Date(2026, 12, 24, 9, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
	title := "Отпуск"

	t.Run("success", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.CreateTimeBlock(context.Background(), &models.CreateTimeBlockRequest{
			UserID:        uuid.New(),
			TenantID:      tenantID,
			StartDateTime: start,
			EndDateTime:   start.Add(72 * time.Hour),
			Type:          "vacation",
			Title:         &title,
		})
		require.NoError(t, err)
		require.NotNil(t, f.blocks.created)

		assert.Equal(t, time.UTC, f.blocks.created.StartDateTime.Location())
		assert.True(t, f.blocks.created.StartDateTime.Equal(start))
		assert.Equal(t, domain.TimeBlockVacation, f.blocks.created.Type)
		assert.Equal(t, f.blocks.created.ID, resp.ID)
		assert.Equal(t, &title, resp.Title)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateTimeBlock(context.Background(), &models.CreateTimeBlockRequest{
			TenantID:      tenantID,
			StartDateTime: start,
			EndDateTime:   start.Add(time.Hour),
			Type:          "holiday",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, f.blocks.created)
	})

	t.Run("constraint violation", func(t *testing.T) {
		f := newFixture()
		f.blocks.createErr = timeBlockRepo.ErrConstraintViolation

		_, err := f.svc.CreateTimeBlock(context.Background(), &models.CreateTimeBlockRequest{
			TenantID:      tenantID,
			StartDateTime: start,
			EndDateTime:   start.Add(time.Hour),
			Type:          "custom",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("external event already imported", func(t *testing.T) {
		f := newFixture()
		f.blocks.createErr = timeBlockRepo.ErrDuplicateExternalEvent
		eventID := "google:evt-42"

		_, err := f.svc.CreateTimeBlock(context.Background(), &models.CreateTimeBlockRequest{
			TenantID:        tenantID,
			StartDateTime:   start,
			EndDateTime:     start.Add(time.Hour),
			Type:            "external_calendar_event",
			ExternalEventID: &eventID,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("tenant not found", func(t *testing.T) {
		f := newFixture()
		f.tenants.err = tenantClient.ErrTenantNotFound

		_, err := f.svc.CreateTimeBlock(context.Background(), &models.CreateTimeBlockRequest{
			TenantID:      tenantID,
			StartDateTime: start,
			EndDateTime:   start.Add(time.Hour),
			Type:          "custom",
		})
		assert.ErrorIs(t, err, ErrTenantNotFound)
		assert.Nil(t, f.blocks.created)
	})
}

func TestService_DeleteTimeBlock(t *testing.T) {
	tenantID := uuid.New()
	blockID := uuid.New()

	newBlocks := func() *fixture {
		f := newFixture()
		f.blocks.byID[blockID] = &domain.TimeBlock{ID: blockID, TenantID: tenantID, Type: domain.TimeBlockCustom}
		return f
	}

	t.Run("success", func(t *testing.T) {
		f := newBlocks()

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{
			UserID: uuid.New(), TenantID: tenantID, TimeBlockID: blockID,
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{blockID}, f.blocks.deleted)
		assert.Equal(t, 1, f.tx.calls)
	})

	t.Run("transaction failure", func(t *testing.T) {
		f := newBlocks()
		f.tx.err = errors.New("txmanager: failed to begin transaction")

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{
			TenantID: tenantID, TimeBlockID: blockID,
		})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.blocks.deleted)
	})

	t.Run("unknown block", func(t *testing.T) {
		f := newBlocks()

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{
			TenantID: tenantID, TimeBlockID: uuid.New(),
		})
		assert.ErrorIs(t, err, ErrTimeBlockNotFound)
		assert.Empty(t, f.blocks.deleted)
	})

	t.Run("block of another tenant", func(t *testing.T) {
		f := newBlocks()

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{
			TenantID: uuid.New(), TimeBlockID: blockID,
		})
		assert.ErrorIs(t, err, ErrTimeBlockNotFound)
		assert.Empty(t, f.blocks.deleted)
	})

	t.Run("delete failure", func(t *testing.T) {
		f := newBlocks()
		f.blocks.deleteErr = errors.New("deadlock detected")

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{
			TenantID: tenantID, TimeBlockID: blockID,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("nil block id", func(t *testing.T) {
		f := newBlocks()

		err := f.svc.DeleteTimeBlock(context.Background(), &models.DeleteTimeBlockRequest{TenantID: tenantID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_BufferTimes(t *testing.T) {
	tenantID := uuid.New()
	categoryID := uuid.New()

	t.Run("list", func(t *testing.T) {
		f := newFixture()
		f.buffers.buffers = []*domain.BufferTime{
			{ID: uuid.New(), TenantID: tenantID, BeforeMinutes: 10, AfterMinutes: 5},
			{ID: uuid.New(), TenantID: tenantID, CategoryID: &categoryID, BeforeMinutes: 0, AfterMinutes: 30},
		}

		resp, err := f.svc.GetBufferTimes(context.Background(), tenantID)
		require.NoError(t, err)
		require.Len(t, resp.BufferTimes, 2)
		assert.Nil(t, resp.BufferTimes[0].CategoryID)
		assert.Equal(t, &categoryID, resp.BufferTimes[1].CategoryID)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetBufferTimes(context.Background(), tenantID)
		require.NoError(t, err)
		assert.NotNil(t, resp.BufferTimes)
		assert.Empty(t, resp.BufferTimes)
	})

	t.Run("update category buffer", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.UpdateBufferTime(context.Background(), &models.UpdateBufferTimeRequest{
			TenantID:      tenantID,
			CategoryID:    &categoryID,
			BeforeMinutes: 15,
			AfterMinutes:  240,
		})
		require.NoError(t, err)
		require.NotNil(t, f.buffers.upserted)
		assert.False(t, f.buffers.upserted.IsGlobal())
		assert.Equal(t, 240, resp.AfterMinutes)
	})

	t.Run("out of range", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateBufferTime(context.Background(), &models.UpdateBufferTimeRequest{
			TenantID:      tenantID,
			BeforeMinutes: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, f.buffers.upserted)
	})

	t.Run("constraint violation", func(t *testing.T) {
		f := newFixture()
		f.buffers.upsertErr = bufferRepo.ErrConstraintViolation

		_, err := f.svc.UpdateBufferTime(context.Background(), &models.UpdateBufferTimeRequest{TenantID: tenantID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
