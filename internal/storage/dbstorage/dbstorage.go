package dbstorage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SversusN/bodacious/internal/pkg/migrator"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresDB struct {
	db *sql.DB
}

// NewDB подключение к PostgreSQL и применение миграций
func NewDB(ctx context.Context, connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to postgresql: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("failed to close PostgreSQL connection after db.Ping: %w", cerr)
		}
		return nil, fmt.Errorf("failed to ping PostgreSQL connection: %w", err)
	}
	if err = migrator.MustGetNewMigrator(migrations, "migrations").ApplyMigrations(db, migrator.Postgres); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate PostgreSQL: %w", err)
	}
	return &PostgresDB{
		db: db,
	}, nil
}

func (pg *PostgresDB) Close() error {
	if pg.db != nil {
		err := pg.db.Close()
		if err != nil {
			return fmt.Errorf("error closing database connection: %w", err)
		}
		log.Println("Database connection closed.")
	}
	return nil
}

func (pg *PostgresDB) List(ctx context.Context) ([]storage.Website, error) {
	rows, err := pg.db.QueryContext(ctx,
		"SELECT "+websiteColumns+" FROM websites ORDER BY order_index DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query websites: %w", err)
	}
	return scanWebsites(rows)
}

func (pg *PostgresDB) MaxOrderIndex(ctx context.Context) (int, error) {
	var maxIndex int
	err := pg.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(order_index), 0) FROM websites").Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to query max order_index: %w", err)
	}
	return maxIndex, nil
}

func (pg *PostgresDB) Insert(ctx context.Context, w storage.Website) error {
	query := "INSERT INTO websites (id, description, url, order_index) VALUES ($1, $2, $3, $4)"
	_, err := pg.db.ExecContext(ctx, query, w.ID, w.Description, w.URL, w.OrderIndex)
	if err != nil {
		return fmt.Errorf("failed to insert website: %w", err)
	}
	return nil
}

func (pg *PostgresDB) Update(ctx context.Context, id string, description string, url string) error {
	res, err := pg.db.ExecContext(ctx,
		"UPDATE websites SET description=$1, url=$2 WHERE id=$3", description, url, id)
	if err != nil {
		return fmt.Errorf("failed to update website: %w", err)
	}
	return storage.CheckAffected(res)
}

func (pg *PostgresDB) Delete(ctx context.Context, id string) error {
	res, err := pg.db.ExecContext(ctx, "DELETE FROM websites WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("failed to delete website: %w", err)
	}
	return storage.CheckAffected(res)
}

func (pg *PostgresDB) Ping(ctx context.Context) error {
	err := pg.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	return nil
}
