package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mw "github.com/SversusN/bodacious/internal/middleware"
)

// AuthorizationKey ключ метаданных с токеном сессии
const AuthorizationKey = "authorization"

// AuthInterceptor описывает структуру интерцептора аутентификации
type AuthInterceptor struct {
	auth      *mw.AuthMW
	protected map[string]bool
}

// NewAuthInterceptor создает аутентификатор для перечисленных методов
func NewAuthInterceptor(auth *mw.AuthMW, protected map[string]bool) *AuthInterceptor {
	return &AuthInterceptor{auth: auth, protected: protected}
}

// AuthenticateAdmin пропускает к защищённым методам только с валидным токеном.
func (i *AuthInterceptor) AuthenticateAdmin(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !i.protected[info.FullMethod] {
		return handler(ctx, req)
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get(AuthorizationKey)
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := i.auth.Validate(mw.BearerToken(values[0])); err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	return handler(mw.WithAdmin(ctx), req)
}
