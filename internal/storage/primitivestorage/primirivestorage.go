package primitivestorage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

// MapStorage хранилище в памяти, при наличии файла сохраняет записи построчно
type MapStorage struct {
	mu   sync.RWMutex
	data map[string]storage.Website
	fh   *utils.FileHelper
}

// NewMemoryStorage хранилище без файла
func NewMemoryStorage() *MapStorage {
	return &MapStorage{data: make(map[string]storage.Website)}
}

// NewStorage конструктор. Ошибка fileErr означает работу без файла.
// Ошибка чтения файла возвращается, иначе следующая перезапись затрёт записи
func NewStorage(fh *utils.FileHelper, fileErr error) (*MapStorage, error) {
	m := NewMemoryStorage()
	if fileErr != nil || fh == nil {
		return m, nil
	}
	lines, err := fh.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("read websites file: %w", err)
	}
	m.fh = fh
	for _, line := range lines {
		var w storage.Website
		//при битой строке пропускаем её
		if err = json.Unmarshal(line, &w); err != nil || w.ID == "" {
			continue
		}
		m.data[w.ID] = w
	}
	return m, nil
}

func (m *MapStorage) List(_ context.Context) ([]storage.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(), nil
}

func (m *MapStorage) MaxOrderIndex(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	maxIndex := 0
	for _, w := range m.data {
		if w.OrderIndex > maxIndex {
			maxIndex = w.OrderIndex
		}
	}
	return maxIndex, nil
}

func (m *MapStorage) Insert(_ context.Context, w storage.Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[w.ID]; ok {
		return fmt.Errorf("website %s already exists", w.ID)
	}
	m.data[w.ID] = w
	if m.fh != nil {
		return m.fh.AppendJSON(w)
	}
	return nil
}

func (m *MapStorage) Update(_ context.Context, id string, description string, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.data[id]
	if !ok {
		return internalerrors.ErrNotFound
	}
	w.Description = description
	w.URL = url
	m.data[id] = w
	return m.flush()
}

func (m *MapStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return internalerrors.ErrNotFound
	}
	delete(m.data, id)
	return m.flush()
}

// Close закрывает файл, если он есть
func (m *MapStorage) Close() error {
	if m.fh == nil {
		return nil
	}
	return m.fh.Close()
}

// flush перезаписывает файл после изменения или удаления
func (m *MapStorage) flush() error {
	if m.fh == nil {
		return nil
	}
	list := m.sorted()
	values := make([]any, 0, len(list))
	for _, w := range list {
		values = append(values, w)
	}
	return m.fh.RewriteJSON(values...)
}

func (m *MapStorage) sorted() []storage.Website {
	res := make([]storage.Website, 0, len(m.data))
	for _, w := range m.data {
		res = append(res, w)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].OrderIndex == res[j].OrderIndex {
			return res[i].ID < res[j].ID
		}
		return res[i].OrderIndex > res[j].OrderIndex
	})
	return res
}
