package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/sheet"
)

// HandlerWebsites конвертер: таблица в JSON конверт.
// CORS заголовки выставляет middleware
func (h *Handlers) HandlerWebsites(w http.ResponseWriter, r *http.Request) {
	res, err := h.fetcher.Fetch(r.Context())
	h.metrics.SheetFetched(err, len(res.Skipped))
	if err != nil {
		h.log.Error("failed to fetch sheet", zap.String("url", h.fetcher.URL()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, sheet.Failure(err))
		return
	}
	for _, s := range res.Skipped {
		h.log.Debug("sheet row skipped", zap.Int("line", s.Line), zap.String("reason", s.Reason))
	}
	writeJSON(w, http.StatusOK, sheet.Success(res.Links))
}
