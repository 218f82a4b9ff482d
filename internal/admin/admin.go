// Package admin курирование таблицы сайтов: вход по паролю, список, добавление, правка, удаление.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

// DefaultPassword пароль администратора по умолчанию
const DefaultPassword = "admin123"

// Тексты ошибок для баннера
const (
	MsgInvalidPassword = "Invalid password"
	MsgEmptyFields     = "Please fill in both fields"
	MsgLoadFailed      = "Failed to load websites"
	MsgAddFailed       = "Failed to add website"
	MsgUpdateFailed    = "Failed to update website"
	MsgDeleteFailed    = "Failed to delete website"
)

// Service операции администратора поверх хранилища
type Service struct {
	s        storage.Storage
	password string
	newID    func() string
}

// NewService конструктор. Пустой пароль заменяется DefaultPassword
func NewService(s storage.Storage, password string) *Service {
	if password == "" {
		password = DefaultPassword
	}
	return &Service{s: s, password: password, newID: uuid.NewString}
}

// Login сравнивает пароль с заданным
func (a *Service) Login(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return internalerrors.ErrInvalidPassword
	}
	return nil
}

// List записи по убыванию order_index
func (a *Service) List(ctx context.Context) ([]storage.Website, error) {
	list, err := a.s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	return list, nil
}

// Add добавляет запись с order_index = максимум + 1
func (a *Service) Add(ctx context.Context, description string, url string) (storage.Website, error) {
	description, url, err := validate(description, url)
	if err != nil {
		return storage.Website{}, err
	}
	maxIndex, err := a.s.MaxOrderIndex(ctx)
	if err != nil {
		return storage.Website{}, fmt.Errorf("add website: %w", err)
	}
	if maxIndex < 0 {
		maxIndex = 0
	}
	w := storage.Website{
		ID:          a.newID(),
		Description: description,
		URL:         url,
		OrderIndex:  maxIndex + 1,
	}
	if err = a.s.Insert(ctx, w); err != nil {
		return storage.Website{}, fmt.Errorf("add website: %w", err)
	}
	return w, nil
}

// Edit заменяет описание и ссылку записи
func (a *Service) Edit(ctx context.Context, id string, description string, url string) error {
	description, url, err := validate(description, url)
	if err != nil {
		return err
	}
	if err = a.s.Update(ctx, id, description, url); err != nil {
		return fmt.Errorf("update website %s: %w", id, err)
	}
	return nil
}

// Delete удаляет запись безвозвратно
func (a *Service) Delete(ctx context.Context, id string) error {
	if err := a.s.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete website %s: %w", id, err)
	}
	return nil
}

func validate(description string, url string) (string, string, error) {
	description = strings.TrimSpace(description)
	url = strings.TrimSpace(url)
	if description == "" || url == "" {
		return "", "", internalerrors.ErrEmptyField
	}
	return description, url, nil
}
