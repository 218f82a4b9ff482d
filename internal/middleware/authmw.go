package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/SversusN/bodacious/internal/internalerrors"
)

const (
	TokenExp             = time.Minute * 180 //Время жизни сессии администратора
	NameCookie           = "admin_auth"      // наименование куки в запросе
	AdminSubject         = "admin"           // subject токена
	CtxAdmin     ctxUser = "admin"           //флаг сессии администратора в контексте
)

type ctxUser string

// Claims токен сессии администратора
type Claims struct {
	jwt.RegisteredClaims
}

// AuthMW структура middleware авторизации
type AuthMW struct {
	secret []byte
	now    func() time.Time
	secure bool // куки только по HTTPS
}

// NewAuthMW конструктор объекта авторизации
func NewAuthMW(secret string) *AuthMW {
	return &AuthMW{secret: []byte(secret), now: time.Now}
}

// SetSecure включает флаг Secure у кук сессии, нужен при работе по HTTPS
func (a *AuthMW) SetSecure(secure bool) {
	a.secure = secure
}

// BuildNewToken выпуск токена после успешного входа
func (a *AuthMW) BuildNewToken() (string, error) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   AdminSubject,
		IssuedAt:  jwt.NewNumericDate(a.now()),
		ExpiresAt: jwt.NewNumericDate(a.now().Add(TokenExp)),
	}}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	stringToken, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.New("error signing token")
	}
	return stringToken, nil
}

// Validate проверка подписи, срока и subject токена
func (a *AuthMW) Validate(tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.secret, nil
		})
	if err != nil || !token.Valid {
		return internalerrors.ErrUnauthorized
	}
	if claims.Subject != AdminSubject {
		return internalerrors.ErrUnauthorized
	}
	return nil
}

// SetSession выставляет куку сессии и возвращает её токен
func (a *AuthMW) SetSession(w http.ResponseWriter) (string, error) {
	token, err := a.BuildNewToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     NameCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  a.now().Add(TokenExp),
	})
	return token, nil
}

// ClearSession удаляет куку сессии
func (a *AuthMW) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     NameCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secure,
		MaxAge:   -1,
	})
}

// Session отмечает в контексте, что запрос пришёл от администратора.
// Токен берётся из куки или заголовка Authorization: Bearer
func (a *AuthMW) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" && a.Validate(token) == nil {
			r = r.WithContext(WithAdmin(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin 401 без сессии администратора
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"admin session required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithAdmin контекст с флагом администратора
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, CtxAdmin, true)
}

// IsAdmin есть ли флаг администратора в контексте
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(CtxAdmin).(bool)
	return ok
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(NameCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return BearerToken(r.Header.Get("Authorization"))
}

// BearerToken токен из значения "Bearer <token>"
func BearerToken(h string) string {
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
