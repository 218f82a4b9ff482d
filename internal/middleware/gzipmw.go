package middleware

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// GzipResponseWriter сжимает ответ, если обработчик отдаёт html или json
type GzipResponseWriter struct {
	http.ResponseWriter
	gz      *gzip.Writer
	decided bool
}

func (w *GzipResponseWriter) decide() {
	if w.decided {
		return
	}
	w.decided = true
	contentType := w.Header().Get("Content-Type")
	var isText = strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/json")
	if !isText {
		return
	}
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.gz = gzip.NewWriter(w.ResponseWriter)
}

func (w *GzipResponseWriter) WriteHeader(statusCode int) {
	w.decide()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *GzipResponseWriter) Write(b []byte) (int, error) {
	w.decide()
	if w.gz == nil {
		return w.ResponseWriter.Write(b)
	}
	write, err := w.gz.Write(b)
	if err != nil {
		return 0, fmt.Errorf("error writing to gzip writer: %w", err)
	}
	return write, nil
}

// Close дописывает хвост gzip потока
func (w *GzipResponseWriter) Close() {
	if w.gz == nil {
		return
	}
	if err := w.gz.Close(); err != nil {
		log.Println("Error closing gzip writer")
	}
}

func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handle gzip request body
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			gzipReader, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip body", http.StatusBadRequest)
				return
			}
			defer func(gzipReader *gzip.Reader) {
				if err := gzipReader.Close(); err != nil {
					log.Println("Error closing gzip reader")
				}
			}(gzipReader)
			r.Body = io.NopCloser(gzipReader)
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gzipResponseWriter := &GzipResponseWriter{ResponseWriter: w}
		defer gzipResponseWriter.Close()
		next.ServeHTTP(gzipResponseWriter, r)
	})
}
