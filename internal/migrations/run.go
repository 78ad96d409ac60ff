// Package migrations применяет SQL миграции из каталога migrations через golang-migrate.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Источник миграций из файловой системы.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет все непримененные миграции из каталога dir.
// Отсутствие изменений ошибкой не считается.
func Run(db *sql.DB, dir string) error {
	const op = "migrations.Run"

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("%s: migrations directory %s not found", op, abs)
	}

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "pgx_v5", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch err := m.Up(); {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		return nil
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
