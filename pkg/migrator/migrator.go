package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose для миграций, встроенных в бинарник
type Migrator struct {
	db     *sql.DB
	logger Logger
}

// New настраивает goose на работу с PostgreSQL и переданной файловой системой миграций
func New(db *sql.DB, migrations fs.FS, logger Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{db: db, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	before, err := m.Version(ctx)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := m.Version(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Migrations applied: version %d -> %d", before, after)
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get migrations version: %w", err)
	}
	return version, nil
}
