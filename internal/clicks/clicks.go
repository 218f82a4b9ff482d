// Package clicks хранит счётчики переходов по ссылкам, ключ - строка url как есть.
package clicks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/SversusN/bodacious/internal/pkg/utils"
)

// Store интерфейс хранилища счётчиков
type Store interface {
	Count(ctx context.Context, url string) (int, error)
	Counts(ctx context.Context) (map[string]int, error)
	Increment(ctx context.Context, url string) (int, error)
}

// MemoryStore счётчики в памяти процесса
type MemoryStore struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int)}
}

func (m *MemoryStore) Count(_ context.Context, url string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[url], nil
}

// Counts копия всех счётчиков
func (m *MemoryStore) Counts(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		res[k] = v
	}
	return res, nil
}

func (m *MemoryStore) Increment(_ context.Context, url string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[url]++
	return m.counts[url], nil
}

// FileStore счётчики в памяти с сохранением в файл одним JSON объектом url -> count.
// Файл перезаписывается при каждом переходе.
type FileStore struct {
	*MemoryStore
	fh *utils.FileHelper
}

// NewFileStore загружает счётчики из файла. Пустой или битый файл даёт пустые счётчики
func NewFileStore(fh *utils.FileHelper) (*FileStore, error) {
	if fh == nil {
		return nil, errors.New("file helper is nil")
	}
	fs := &FileStore{MemoryStore: NewMemoryStore(), fh: fh}
	lines, err := fh.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("read clicks file: %w", err)
	}
	if len(lines) > 0 {
		var counts map[string]int
		//при битом файле начинаем с нуля
		if err = json.Unmarshal(lines[len(lines)-1], &counts); err == nil {
			for k, v := range counts {
				if v > 0 {
					fs.counts[k] = v
				}
			}
		}
	}
	return fs, nil
}

func (f *FileStore) Increment(ctx context.Context, url string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[url]++
	if err := f.fh.RewriteJSON(f.counts); err != nil {
		f.counts[url]--
		return 0, fmt.Errorf("save clicks: %w", err)
	}
	return f.counts[url], nil
}

// Close закрывает файл
func (f *FileStore) Close() error {
	return f.fh.Close()
}
