package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

// JSONLoginRequest вход администратора
type JSONLoginRequest struct {
	Password string `json:"password"`
}

// JSONLoginResponse токен сессии для клиентов без кук
type JSONLoginResponse struct {
	Token string `json:"token"`
}

// JSONWebsiteRequest описание и ссылка для добавления и правки
type JSONWebsiteRequest struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

// JSONWebsitesResponse свежий список после любой операции
type JSONWebsitesResponse struct {
	Websites []storage.Website `json:"websites"`
}

// HandlerAdminLogin сверяет пароль и выдаёт сессию
func (h *Handlers) HandlerAdminLogin(w http.ResponseWriter, r *http.Request) {
	var reqBody JSONLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "Bad JSON request")
		return
	}
	if err := h.admin.Login(reqBody.Password); err != nil {
		writeError(w, http.StatusUnauthorized, admin.MsgInvalidPassword)
		return
	}
	token, err := h.auth.SetSession(w)
	if err != nil {
		h.log.Error("set session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusOK, JSONLoginResponse{Token: token})
}

// HandlerAdminLogout сбрасывает сессию
func (h *Handlers) HandlerAdminLogout(w http.ResponseWriter, _ *http.Request) {
	h.auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandlerAdminList записи по убыванию order_index
func (h *Handlers) HandlerAdminList(w http.ResponseWriter, r *http.Request) {
	h.writeWebsites(w, r, http.StatusOK)
}

// HandlerAdminAdd добавление записи
func (h *Handlers) HandlerAdminAdd(w http.ResponseWriter, r *http.Request) {
	var reqBody JSONWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "Bad JSON request")
		return
	}
	_, err := h.admin.Add(r.Context(), reqBody.Description, reqBody.URL)
	h.metrics.AdminMutation("add", err)
	if err != nil {
		h.mutationError(w, err, admin.MsgAddFailed)
		return
	}
	h.writeWebsites(w, r, http.StatusCreated)
}

// HandlerAdminUpdate правка описания и ссылки
func (h *Handlers) HandlerAdminUpdate(w http.ResponseWriter, r *http.Request) {
	var reqBody JSONWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeError(w, http.StatusBadRequest, "Bad JSON request")
		return
	}
	err := h.admin.Edit(r.Context(), chi.URLParam(r, "id"), reqBody.Description, reqBody.URL)
	h.metrics.AdminMutation("update", err)
	if err != nil {
		h.mutationError(w, err, admin.MsgUpdateFailed)
		return
	}
	h.writeWebsites(w, r, http.StatusOK)
}

// HandlerAdminDelete удаление без возможности восстановления
func (h *Handlers) HandlerAdminDelete(w http.ResponseWriter, r *http.Request) {
	err := h.admin.Delete(r.Context(), chi.URLParam(r, "id"))
	h.metrics.AdminMutation("delete", err)
	if err != nil {
		h.mutationError(w, err, admin.MsgDeleteFailed)
		return
	}
	h.writeWebsites(w, r, http.StatusOK)
}

// writeWebsites после изменения всегда перечитываем список целиком
func (h *Handlers) writeWebsites(w http.ResponseWriter, r *http.Request, status int) {
	list, err := h.admin.List(r.Context())
	if err != nil {
		h.log.Error("list websites", zap.Error(err))
		writeError(w, http.StatusInternalServerError, admin.MsgLoadFailed)
		return
	}
	writeJSON(w, status, JSONWebsitesResponse{Websites: list})
}

func (h *Handlers) mutationError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, internalerrors.ErrEmptyField):
		writeError(w, http.StatusBadRequest, admin.MsgEmptyFields)
	case errors.Is(err, internalerrors.ErrNotFound):
		writeError(w, http.StatusNotFound, msg)
	default:
		h.log.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, msg)
	}
}
