// Пакет описания внутренних ошибок приложения
package internalerrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("website not found")          // Запись не найдена
	ErrEmptyField       = errors.New("please fill in both fields") // Не заполнено описание или ссылка
	ErrInvalidPassword  = errors.New("invalid password")           // Неверный пароль администратора
	ErrUnauthorized     = errors.New("admin session required")     // Нет валидной сессии администратора
	ErrSheetUnavailable = errors.New("sheet is unavailable")       // Таблица недоступна по сети
	ErrSheetStatus      = errors.New("Failed to fetch sheet")      // Таблица ответила не 2xx
	ErrUnknownLink      = errors.New("link is not in the gallery") // Переход по ссылке не из галереи
	ErrBadEnvelope      = errors.New("invalid response from server")
)

// StatusError ошибка с HTTP кодом ответа таблицы
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%v: %d", ErrSheetStatus, e.Code)
}

// Unwrap позволяет сравнивать через errors.Is с ErrSheetStatus
func (e StatusError) Unwrap() error {
	return ErrSheetStatus
}

func NewStatusError(code int) error {
	return &StatusError{Code: code}
}
