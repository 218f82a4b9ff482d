// Package sqlitestorage хранит курируемые сайты в файле SQLite.
package sqlitestorage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/SversusN/bodacious/internal/pkg/migrator"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store хранилище SQLite
type Store struct {
	sqlDB *sql.DB
}

// Open открывает базу и применяет встроенные миграции
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// один писатель
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err = migrator.MustGetNewMigrator(migrations, "migrations").ApplyMigrations(sqlDB, migrator.SQLite); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close закрывает базу
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) List(ctx context.Context) ([]storage.Website, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, description, url, order_index FROM websites ORDER BY order_index DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query websites: %w", err)
	}
	defer rows.Close()

	res := make([]storage.Website, 0)
	for rows.Next() {
		var w storage.Website
		if err = rows.Scan(&w.ID, &w.Description, &w.URL, &w.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

func (s *Store) MaxOrderIndex(ctx context.Context) (int, error) {
	var maxIndex int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COALESCE(MAX(order_index), 0) FROM websites`).Scan(&maxIndex); err != nil {
		return 0, fmt.Errorf("query max order_index: %w", err)
	}
	return maxIndex, nil
}

func (s *Store) Insert(ctx context.Context, w storage.Website) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO websites (id, description, url, order_index) VALUES (?, ?, ?, ?)`,
		w.ID, w.Description, w.URL, w.OrderIndex)
	if err != nil {
		return fmt.Errorf("insert website: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, id string, description string, url string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE websites SET description = ?, url = ? WHERE id = ?`, description, url, id)
	if err != nil {
		return fmt.Errorf("update website: %w", err)
	}
	return storage.CheckAffected(res)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM websites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	return storage.CheckAffected(res)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}
