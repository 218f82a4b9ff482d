// Package metrics счётчики Prometheus для конвертера, галереи и админки.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bodacious"

// Metrics набор счётчиков. Методы безопасны для nil
type Metrics struct {
	registry       *prometheus.Registry
	sheetFetches   *prometheus.CounterVec
	skippedRows    prometheus.Counter
	fallbacks      prometheus.Counter
	clicks         prometheus.Counter
	adminMutations *prometheus.CounterVec
}

// New создает отдельный реестр, чтобы тесты не делили глобальный
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sheetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_fetches_total",
			Help:      "Spreadsheet export fetches by result.",
		}, []string{"result"}),
		skippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_skipped_rows_total",
			Help:      "Spreadsheet rows dropped during parsing.",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_fallbacks_total",
			Help:      "Gallery loads served from the fallback list.",
		}),
		clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_clicks_total",
			Help:      "Recorded link clicks.",
		}),
		adminMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_mutations_total",
			Help:      "Admin add/update/delete calls by operation and result.",
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sheetFetches,
		m.skippedRows,
		m.fallbacks,
		m.clicks,
		m.adminMutations,
	)
	return m
}

// Handler отдает метрики в текстовом формате
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry для проверок в тестах
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SheetFetched(err error, skipped int) {
	if m == nil {
		return
	}
	m.sheetFetches.WithLabelValues(result(err)).Inc()
	if skipped > 0 {
		m.skippedRows.Add(float64(skipped))
	}
}

func (m *Metrics) Fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) Clicked() {
	if m == nil {
		return
	}
	m.clicks.Inc()
}

func (m *Metrics) AdminMutation(op string, err error) {
	if m == nil {
		return
	}
	m.adminMutations.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
