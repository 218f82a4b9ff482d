// Пакет подключения хранения в файле
package utils

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrNoFile хранение в файле выключено
var ErrNoFile = errors.New("filename is empty, no store tempdb")

// FileHelper структура для работы с файлом. Одна JSON запись на строку
type FileHelper struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileHelper возвращаем хелпер или ошибку, чтобы выключить сохранение в файл
func NewFileHelper(filename string) (*FileHelper, error) {
	if filename == "" {
		return nil, ErrNoFile
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &FileHelper{file: file}, nil
}

// Name путь к файлу
func (fh *FileHelper) Name() string {
	return fh.file.Name()
}

// AppendJSON дописывает запись в конец файла
func (fh *FileHelper) AppendJSON(v any) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	return fh.writeLine(v)
}

// RewriteJSON перезаписываем файл целиком, например после удаления
func (fh *FileHelper) RewriteJSON(values ...any) error {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	if err := fh.file.Truncate(0); err != nil {
		return fmt.Errorf("cannot truncate file: %w", err)
	}
	for _, v := range values {
		if err := fh.writeLine(v); err != nil {
			return err
		}
	}
	return fh.file.Sync()
}

// ReadLines чтение всех строк файла с начала, длина строки не ограничена
func (fh *FileHelper) ReadLines() ([][]byte, error) {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	if _, err := fh.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var lines [][]byte
	reader := bufio.NewReader(fh.file)
	for {
		line, err := reader.ReadBytes('\n')
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read file: %w", err)
		}
	}
}

// Close закрывает файл
func (fh *FileHelper) Close() error {
	return fh.file.Close()
}

func (fh *FileHelper) writeLine(v any) error {
	jt, err := json.Marshal(v)
	if err != nil {
		return err
	}
	jt = append(jt, '\n')
	_, err = fh.file.Write(jt)
	return err
}
