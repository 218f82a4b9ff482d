package storage

import (
	"context"
	"database/sql"

	"github.com/SversusN/bodacious/internal/internalerrors"
)

// Website курируемая запись администратора
type Website struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	URL         string `json:"url"`
	OrderIndex  int    `json:"order_index"`
}

// Storage хранилище курируемых сайтов
type Storage interface {
	// List все записи по убыванию order_index
	List(ctx context.Context) ([]Website, error)
	// MaxOrderIndex наибольший order_index или 0, если записей нет
	MaxOrderIndex(ctx context.Context) (int, error)
	Insert(ctx context.Context, w Website) error
	Update(ctx context.Context, id string, description string, url string) error
	Delete(ctx context.Context, id string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAffected ErrNotFound, если запрос не затронул ни одной строки
func CheckAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internalerrors.ErrNotFound
	}
	return nil
}
