// Модель хранения объектов в БД
package dbstorage

import (
	"database/sql"

	"github.com/SversusN/bodacious/internal/storage/storage"
)

// websiteColumns порядок колонок для scanWebsites
const websiteColumns = "id, description, url, order_index"

// scanWebsites читает строки выборки в записи
func scanWebsites(rows *sql.Rows) ([]storage.Website, error) {
	defer rows.Close()
	res := make([]storage.Website, 0)
	for rows.Next() {
		var w storage.Website
		if err := rows.Scan(&w.ID, &w.Description, &w.URL, &w.OrderIndex); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}
