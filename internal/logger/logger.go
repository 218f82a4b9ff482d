// Logger пакет для инициализация логгера zap
package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServerLogger структура логера
type ServerLogger struct {
	Logger *zap.Logger
}

// CreateLogger функуия создания с возможностью регулирования уровней
func CreateLogger(level zap.AtomicLevel) *ServerLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	l, err := cfg.Build()

	if err != nil {
		return &ServerLogger{Logger: zap.NewNop()}
	}
	return &ServerLogger{
		Logger: l,
	}
}

// ParseLevel уровень из строки конфигурации, по умолчанию info
func ParseLevel(s string) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(s)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

// Sync сбрасывает буфер
func (l ServerLogger) Sync() {
	_ = l.Logger.Sync()
}

// responseData тип для фиксации размера запроса
type responseData struct {
	size   int
	status int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

// Write метод записи размера в ответ
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader Фиксация кода заголовка
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LoggingMW журнал запросов: метод, путь, статус, длительность и размер ответа.
// Паника в обработчике превращается в 500
func (l ServerLogger) LoggingMW() func(http.Handler) http.Handler {
	sl := l.Logger.Sugar()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rd := &responseData{}
			lw := &loggingResponseWriter{ResponseWriter: w, responseData: rd}
			start := time.Now()
			defer func() {
				if err := recover(); err != nil {
					sl.Errorw("panic while serving request", "uri", req.RequestURI, "panic", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					rd.status = http.StatusInternalServerError
				}
				sl.Infow("request",
					"uri", req.RequestURI,
					"method", req.Method,
					"status", rd.status,
					"duration", time.Since(start),
					"size", rd.size,
				)
			}()
			next.ServeHTTP(lw, req)
		})
	}
}
