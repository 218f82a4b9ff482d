package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/internalerrors"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/storage/storage"
)

// коды ошибок в ?error= для баннера админки
var bannerMessages = map[string]string{
	"password": admin.MsgInvalidPassword,
	"empty":    admin.MsgEmptyFields,
	"load":     admin.MsgLoadFailed,
	"add":      admin.MsgAddFailed,
	"update":   admin.MsgUpdateFailed,
	"delete":   admin.MsgDeleteFailed,
}

type galleryPage struct {
	View  gallery.View
	Cards []galleryCard
}

// galleryCard ссылка галереи с адресом перехода через /go
type galleryCard struct {
	gallery.Item
	GoURL string
}

type adminPage struct {
	Authenticated bool
	Error         string
	Websites      []storage.Website
}

// PageGallery главная страница
func (h *Handlers) PageGallery(w http.ResponseWriter, r *http.Request) {
	view := h.gallery.Load(r.Context(), gallery.ParseOrder(r.URL.Query().Get("sort")))
	page := galleryPage{View: view, Cards: make([]galleryCard, 0, len(view.Items))}
	for _, it := range view.Items {
		page.Cards = append(page.Cards, galleryCard{Item: it, GoURL: h.goURL(it.URL)})
	}
	h.render(w, "gallery.html", page)
}

func (h *Handlers) goURL(target string) string {
	path := "/go?url=" + url.QueryEscape(target)
	if h.baseURL == "" {
		return path
	}
	return utils.GetFullURL(h.baseURL, path)
}

// PageAdmin форма входа или панель курирования
func (h *Handlers) PageAdmin(w http.ResponseWriter, r *http.Request) {
	page := adminPage{
		Authenticated: mw.IsAdmin(r.Context()),
		Error:         bannerMessages[r.URL.Query().Get("error")],
	}
	if page.Authenticated {
		list, err := h.admin.List(r.Context())
		if err != nil {
			h.log.Error("list websites", zap.Error(err))
			page.Error = admin.MsgLoadFailed
		}
		page.Websites = list
	}
	h.render(w, "admin.html", page)
}

// FormAdminLogin вход из html формы
func (h *Handlers) FormAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Login(r.PostFormValue("password")); err != nil {
		redirectAdmin(w, r, "password")
		return
	}
	if _, err := h.auth.SetSession(w); err != nil {
		h.log.Error("set session", zap.Error(err))
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	redirectAdmin(w, r, "")
}

// FormAdminLogout выход из html формы
func (h *Handlers) FormAdminLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearSession(w)
	redirectAdmin(w, r, "")
}

// FormAdminAdd добавление из html формы
func (h *Handlers) FormAdminAdd(w http.ResponseWriter, r *http.Request) {
	_, err := h.admin.Add(r.Context(), r.PostFormValue("description"), r.PostFormValue("url"))
	h.metrics.AdminMutation("add", err)
	redirectAdmin(w, r, h.formError(err, "add"))
}

// FormAdminUpdate правка из html формы
func (h *Handlers) FormAdminUpdate(w http.ResponseWriter, r *http.Request) {
	err := h.admin.Edit(r.Context(), chi.URLParam(r, "id"), r.PostFormValue("description"), r.PostFormValue("url"))
	h.metrics.AdminMutation("update", err)
	redirectAdmin(w, r, h.formError(err, "update"))
}

// FormAdminDelete удаление из html формы
func (h *Handlers) FormAdminDelete(w http.ResponseWriter, r *http.Request) {
	err := h.admin.Delete(r.Context(), chi.URLParam(r, "id"))
	h.metrics.AdminMutation("delete", err)
	redirectAdmin(w, r, h.formError(err, "delete"))
}

// RequireAdminPage без сессии возвращает на форму входа
func RequireAdminPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !mw.IsAdmin(r.Context()) {
			redirectAdmin(w, r, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handlers) formError(err error, code string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, internalerrors.ErrEmptyField):
		return "empty"
	default:
		h.log.Error("admin form failed", zap.String("op", code), zap.Error(err))
		return code
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func redirectAdmin(w http.ResponseWriter, r *http.Request, code string) {
	target := "/admin"
	if code != "" {
		target += "?error=" + code
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
