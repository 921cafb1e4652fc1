package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/pgerrors"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&wh.ID,
		&wh.TenantID,
		&dayOfWeek,
		&wh.StartTime,
		&wh.EndTime,
		&wh.MaxConcurrentBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	wh.DayOfWeek = time.Weekday(dayOfWeek)
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// GetByTenant получает рабочие часы арендатора по всем дням недели
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"day_of_week",
		"start_time",
		"end_time",
		"max_concurrent_bookings",
		"created_at",
		"updated_at",
	).
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0, domain.DaysInWeek)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTenant - scan working hours: %v", ErrScanRow, err)
		}
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - iterate rows: %v", ErrScanRow, err)
	}

	return hours, nil
}

func buildUpsert(wh *domain.WorkingHours) (string, []interface{}, error) {
	return psqlbuilder.Insert("working_hours").
		Columns(
			"id",
			"tenant_id",
			"day_of_week",
			"start_time",
			"end_time",
			"max_concurrent_bookings",
		).
		Values(
			wh.ID,
			wh.TenantID,
			int(wh.DayOfWeek),
			wh.StartTime,
			wh.EndTime,
			wh.MaxConcurrentBookings,
		).
		Suffix(`ON CONFLICT (tenant_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			max_concurrent_bookings = EXCLUDED.max_concurrent_bookings,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
}

// Upsert создает или обновляет рабочие часы арендатора на день недели.
// Если запись на этот день уже есть, ID остается прежним.
func (r *Repository) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if wh.ID == uuid.Nil {
		wh.ID = uuid.New()
	}

	query, args, err := buildUpsert(wh)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&createdAt,
		&updatedAt,
	)
	if pgerrors.IsCheckViolation(err) {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrConstraintViolation, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}
