package timeblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/pgerrors"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"tenant_id",
	"start_date_time",
	"end_date_time",
	"type",
	"title",
	"recurrence_pattern",
	"recurrence_end_date",
	"external_event_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с блокировками времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeBlock(row rowScanner) (*domain.TimeBlock, error) {
	var block domain.TimeBlock
	var title, pattern, externalID sql.NullString
	var recurrenceEnd, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.TenantID,
		&block.StartDateTime,
		&block.EndDateTime,
		&block.Type,
		&title,
		&pattern,
		&recurrenceEnd,
		&externalID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	block.StartDateTime = block.StartDateTime.UTC()
	block.EndDateTime = block.EndDateTime.UTC()
	if title.Valid {
		block.Title = &title.String
	}
	if pattern.Valid {
		block.RecurrencePattern = &pattern.String
	}
	if recurrenceEnd.Valid {
		t := recurrenceEnd.Time.UTC()
		block.RecurrenceEndDate = &t
	}
	if externalID.Valid {
		block.ExternalEventID = &externalID.String
	}
	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return &block, nil
}

func buildGetByTenantInRange(tenantID uuid.UUID, rng domain.Interval) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From("time_blocks").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Lt{"start_date_time": rng.End}).
		Where(squirrel.Gt{"end_date_time": rng.Start}).
		OrderBy("start_date_time ASC").
		ToSql()
}

// GetByTenantInRange получает блокировки арендатора, пересекающиеся с интервалом
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByTenantInRange(ctx context.Context, tenantID uuid.UUID, rng domain.Interval) ([]*domain.TimeBlock, error) {
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

	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		block, err := scanTimeBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTenantInRange - scan time block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTenantInRange - iterate rows: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("time_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanTimeBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time block: %v", ErrScanRow, err)
	}

	return block, nil
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("time_blocks").
		Columns(
			"id",
			"tenant_id",
			"start_date_time",
			"end_date_time",
			"type",
			"title",
			"recurrence_pattern",
			"recurrence_end_date",
			"external_event_id",
		).
		Values(
			block.ID,
			block.TenantID,
			block.StartDateTime.UTC(),
			block.EndDateTime.UTC(),
			block.Type,
			block.Title,
			block.RecurrencePattern,
			block.RecurrenceEndDate,
			block.ExternalEventID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if pgerrors.IsCheckViolation(err) {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrConstraintViolation, err)
	}
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrDuplicateExternalEvent, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// Delete удаляет блокировку арендатора
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTimeBlockNotFound
	}

	return nil
}
