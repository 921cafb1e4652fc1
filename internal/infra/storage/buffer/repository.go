package buffer

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
	"category_id",
	"before_minutes",
	"after_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с буферами между бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория буферов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBuffer(row rowScanner) (*domain.BufferTime, error) {
	var buffer domain.BufferTime
	var categoryID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&buffer.ID,
		&buffer.TenantID,
		&categoryID,
		&buffer.BeforeMinutes,
		&buffer.AfterMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := categoryID.UUID
		buffer.CategoryID = &id
	}
	buffer.CreatedAt = createdAt.Time
	buffer.UpdatedAt = updatedAt.Time

	return &buffer, nil
}

func buildGetByTenantAndCategory(tenantID uuid.UUID, categoryID *uuid.UUID) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From("buffer_times").
		Where(squirrel.Eq{"tenant_id": tenantID})

	// NULL category_id - глобальный буфер арендатора
	if categoryID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *categoryID})
	}

	return selectBuilder.ToSql()
}

// GetByTenantAndCategory получает буфер для категории услуг (categoryID == nil - глобальный)
// Если в контексте передана активная транзакция, использует её
func (r *Repository) GetByTenantAndCategory(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) (*domain.BufferTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByTenantAndCategory(tenantID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndCategory - build select query: %v", ErrBuildQuery, err)
	}

	buffer, err := scanBuffer(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBufferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndCategory - scan buffer: %v", ErrScanRow, err)
	}

	return buffer, nil
}

// GetGlobal получает глобальный буфер арендатора
func (r *Repository) GetGlobal(ctx context.Context, tenantID uuid.UUID) (*domain.BufferTime, error) {
	return r.GetByTenantAndCategory(ctx, tenantID, nil)
}

// GetAllByTenant получает все буферы арендатора (глобальный первым)
func (r *Repository) GetAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.BufferTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("buffer_times").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("category_id NULLS FIRST", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	buffers := make([]*domain.BufferTime, 0)
	for rows.Next() {
		buffer, err := scanBuffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByTenant - scan buffer: %v", ErrScanRow, err)
		}
		buffers = append(buffers, buffer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByTenant - iterate rows: %v", ErrScanRow, err)
	}

	return buffers, nil
}

func buildUpsert(buffer *domain.BufferTime) (string, []interface{}, error) {
	var categoryID uuid.NullUUID
	if buffer.CategoryID != nil {
		categoryID = uuid.NullUUID{UUID: *buffer.CategoryID, Valid: true}
	}

	return psqlbuilder.Insert("buffer_times").
		Columns(
			"id",
			"tenant_id",
			"category_id",
			"before_minutes",
			"after_minutes",
		).
		Values(
			buffer.ID,
			buffer.TenantID,
			categoryID,
			buffer.BeforeMinutes,
			buffer.AfterMinutes,
		).
		Suffix(`ON CONFLICT (tenant_id, COALESCE(category_id, '00000000-0000-0000-0000-000000000000'::uuid)) DO UPDATE SET
			before_minutes = EXCLUDED.before_minutes,
			after_minutes = EXCLUDED.after_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
}

// Upsert создает или обновляет буфер для пары (арендатор, категория)
func (r *Repository) Upsert(ctx context.Context, buffer *domain.BufferTime) (*domain.BufferTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if buffer.ID == uuid.Nil {
		buffer.ID = uuid.New()
	}

	query, args, err := buildUpsert(buffer)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&buffer.ID,
		&createdAt,
		&updatedAt,
	)
	if pgerrors.IsCheckViolation(err) {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrConstraintViolation, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	buffer.CreatedAt = createdAt.Time
	buffer.UpdatedAt = updatedAt.Time

	return buffer, nil
}
