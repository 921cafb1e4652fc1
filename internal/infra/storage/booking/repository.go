package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения бронирований.
// Таблицу bookings пишет booking-service, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func buildGetByTenantInRange(tenantID uuid.UUID, rng domain.Interval) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"tenant_id",
		"service_id",
		"customer_id",
		"start_date_time",
		"end_date_time",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"start_date_time": rng.End}).
		Where(squirrel.Gt{"end_date_time": rng.Start}).
		OrderBy("start_date_time ASC").
		ToSql()
}

// GetByTenantInRange получает бронирования арендатора, пересекающиеся с интервалом.
// Возвращает бронирования в любом статусе, фильтрация по статусу на стороне вызывающего.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) GetByTenantInRange(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByTenantInRange(tenantID, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.TenantID,
			&booking.ServiceID,
			&booking.CustomerID,
			&booking.StartDateTime,
			&booking.EndDateTime,
			&booking.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTenantInRange - scan booking: %v", ErrScanRow, err)
		}

		booking.StartDateTime = booking.StartDateTime.UTC()
		booking.EndDateTime = booking.EndDateTime.UTC()
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTenantInRange - iterate rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}
