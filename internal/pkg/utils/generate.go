// Пакет вспомогательных функций
package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"strings"
)

// GenerateSecret формирует случайный ключ подписи, если он не задан в конфигурации
func GenerateSecret() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		log.Printf("smth bad with generate %v", err)
	}
	return fmt.Sprintf("%X", b[0:])
}

// GetFullURL создает полный адрес из базового адреса и пути
func GetFullURL(baseURL string, path string) string {
	return fmt.Sprint(strings.TrimRight(baseURL, "/"), "/", strings.TrimLeft(path, "/"))
}
