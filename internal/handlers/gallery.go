package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/internalerrors"
)

// JSONClickRequest переход по ссылке
type JSONClickRequest struct {
	URL string `json:"url"`
}

// HandlerGallery витрина в JSON, ?sort=recent|clicks
func (h *Handlers) HandlerGallery(w http.ResponseWriter, r *http.Request) {
	view := h.gallery.Load(r.Context(), gallery.ParseOrder(r.URL.Query().Get("sort")))
	writeJSON(w, http.StatusOK, view)
}

// HandlerClick учитывает переход и возвращает адрес и новый счётчик
func (h *Handlers) HandlerClick(w http.ResponseWriter, r *http.Request) {
	var reqBody JSONClickRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "Bad JSON request")
		return
	}
	click, err := h.gallery.Click(r.Context(), reqBody.URL)
	switch {
	case errors.Is(err, internalerrors.ErrEmptyField):
		writeError(w, http.StatusBadRequest, "url is required")
	case errors.Is(err, internalerrors.ErrUnknownLink):
		writeError(w, http.StatusNotFound, internalerrors.ErrUnknownLink.Error())
	case err != nil:
		h.log.Error("click failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record click")
	default:
		writeJSON(w, http.StatusOK, click)
	}
}

// HandlerGo учитывает переход и перенаправляет на сайт из галереи
func (h *Handlers) HandlerGo(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	click, err := h.gallery.Click(r.Context(), url)
	if errors.Is(err, internalerrors.ErrEmptyField) {
		http.Error(w, "url is missing", http.StatusBadRequest)
		return
	}
	if errors.Is(err, internalerrors.ErrUnknownLink) {
		http.Error(w, internalerrors.ErrUnknownLink.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("click failed", zap.Error(err))
		// переход важнее счётчика
		click.URL = gallery.NormalizeURL(url)
	}
	w.Header().Set("Location", click.URL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}
