// Пакет для применения миграций go.migrate
package migrator

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Dialect тип базы данных для миграций
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Migrator структура мигратор
type Migrator struct {
	srcDriver source.Driver
}

// MustGetNewMigrator Получение экзепляра мигратора для чтения миграции из файлов
func MustGetNewMigrator(sqlFiles embed.FS, dirName string) *Migrator {

	d, err := iofs.New(sqlFiles, dirName)
	if err != nil {
		panic(err)
	}
	return &Migrator{
		srcDriver: d,
	}
}

// ApplyMigrations Применение миграций для DB нужного типа
func (m *Migrator) ApplyMigrations(db *sql.DB, dialect Dialect) error {
	driver, err := dbDriver(db, dialect)
	if err != nil {
		return fmt.Errorf("unable to create db instance: %v", err)
	}

	migrator, err := migrate.NewWithInstance("migration_embeded_sql_files", m.srcDriver, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("unable to create migration: %v", err)
	}

	if err = migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to apply migrations %v", err)
	}

	return nil
}

func dbDriver(db *sql.DB, dialect Dialect) (database.Driver, error) {
	switch dialect {
	case Postgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case SQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}
