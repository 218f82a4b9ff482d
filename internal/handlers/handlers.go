// Handlers пакет для функционирования http-обработчиков
package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/metrics"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/sheet"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Handlers тип для внедрения зависимости
type Handlers struct {
	fetcher     *sheet.Fetcher
	gallery     *gallery.Service
	admin       *admin.Service
	auth        *mw.AuthMW
	s           storage.Storage
	clicks      clicks.Store
	metrics     *metrics.Metrics
	log         *zap.Logger
	trustSubnet *net.IPNet
	baseURL     string
}

// Deps зависимости обработчиков
type Deps struct {
	Fetcher     *sheet.Fetcher
	Gallery     *gallery.Service
	Admin       *admin.Service
	Auth        *mw.AuthMW
	Storage     storage.Storage
	Clicks      clicks.Store
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	TrustSubnet *net.IPNet
	BaseURL     string // публичный адрес для ссылок галереи, пустой даёт относительные
}

// errorResponse JSON ответ с текстом для баннера
type errorResponse struct {
	Error string `json:"error"`
}

// statsResponse статистика для доверенной подсети
type statsResponse struct {
	Websites    int `json:"websites"`     // количество курируемых сайтов
	TrackedURLs int `json:"tracked_urls"` // количество ссылок с переходами
	Clicks      int `json:"clicks"`       // всего переходов
}

// NewHandlers инициализация объекта handlers
func NewHandlers(d Deps) *Handlers {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Handlers{
		fetcher:     d.Fetcher,
		gallery:     d.Gallery,
		admin:       d.Admin,
		auth:        d.Auth,
		s:           d.Storage,
		clicks:      d.Clicks,
		metrics:     d.Metrics,
		log:         d.Logger,
		baseURL:     d.BaseURL,
		trustSubnet: d.TrustSubnet,
	}
}

// HandlerDBPing проверяет возможность использования хранилища
func (h *Handlers) HandlerDBPing(res http.ResponseWriter, req *http.Request) {
	pinger, ok := h.s.(storage.Pinger)
	if !ok {
		http.Error(res, "No DB to ping , sorry...", http.StatusBadRequest)
		return
	}
	result := pinger.Ping(req.Context())
	res.Header().Set("Content-Type", "text/plain")
	if result == nil {
		res.WriteHeader(http.StatusOK)
		res.Write([]byte("OK ping"))
	} else {
		h.log.Error("ping failed", zap.Error(result))
		res.WriteHeader(http.StatusInternalServerError)
		res.Write([]byte("BAD ping"))
	}
}

// HandlerGetStats статистика только для доверенной подсети по X-Real-IP
func (h *Handlers) HandlerGetStats(w http.ResponseWriter, r *http.Request) {
	if !utils.InSubnet(h.trustSubnet, r.Header.Get("X-Real-IP")) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	stats, err := h.stats(r.Context())
	if err != nil {
		h.log.Error("stats failed", zap.Error(err))
		http.Error(w, "Can`t get from storage", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) stats(ctx context.Context) (statsResponse, error) {
	var resp statsResponse
	list, err := h.s.List(ctx)
	if err != nil {
		return resp, err
	}
	counts, err := h.clicks.Counts(ctx)
	if err != nil {
		return resp, err
	}
	resp.Websites = len(list)
	resp.TrackedURLs = len(counts)
	for _, c := range counts {
		resp.Clicks += c
	}
	return resp, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
