// Package grpcsrv содержит реализацию gRPC сервера.
package grpcsrv

import (
	"context"
	"encoding/json"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/grpcsrv/interceptors"
	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/metrics"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/sheet"
)

// GalleryService описывает тип gRPC сервера.
type GalleryService struct {
	fetcher *sheet.Fetcher
	gallery *gallery.Service
	admin   *admin.Service
	auth    *mw.AuthMW
	metrics *metrics.Metrics
	log     *zap.Logger
}

// Deps зависимости сервера
type Deps struct {
	Fetcher *sheet.Fetcher
	Gallery *gallery.Service
	Admin   *admin.Service
	Auth    *mw.AuthMW
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewGalleryService сервис без транспорта, удобно для тестов
func NewGalleryService(d Deps) *GalleryService {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &GalleryService{
		fetcher: d.Fetcher,
		gallery: d.Gallery,
		admin:   d.Admin,
		auth:    d.Auth,
		metrics: d.Metrics,
		log:     d.Logger,
	}
}

// NewGRPCServer создает и возвращает новый сервер.
func NewGRPCServer(d Deps) *grpc.Server {
	svc := NewGalleryService(d)
	authInterceptor := interceptors.NewAuthInterceptor(d.Auth, adminMethods)
	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerInterceptor(svc.log),
			authInterceptor.AuthenticateAdmin,
		),
	)
	s.RegisterService(&GalleryServiceDesc, svc)
	return s
}

// FetchWebsites конвертер таблицы: тот же конверт, что и /api/websites.
// Ошибка таблицы отдаётся статусом Unavailable с текстом конверта
func (s *GalleryService) FetchWebsites(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	res, err := s.fetcher.Fetch(ctx)
	s.metrics.SheetFetched(err, len(res.Skipped))
	if err != nil {
		s.log.Warn("sheet fetch failed", zap.Error(err))
		return nil, status.Error(codes.Unavailable, sheet.Failure(err).Error)
	}
	return toStruct(sheet.Success(res.Links))
}

// Gallery витрина в заданном порядке
func (s *GalleryService) Gallery(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	return toStruct(s.gallery.Load(ctx, gallery.ParseOrder(in.GetValue())))
}

// Click учитывает переход
func (s *GalleryService) Click(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	c, err := s.gallery.Click(ctx, in.GetValue())
	if err != nil {
		switch {
		case errors.Is(err, internalerrors.ErrEmptyField):
			return nil, status.Error(codes.InvalidArgument, "url is required")
		case errors.Is(err, internalerrors.ErrUnknownLink):
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, "Internal server error")
	}
	return toStruct(c)
}

// Login возвращает токен сессии для заголовка authorization
func (s *GalleryService) Login(_ context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if err := s.admin.Login(in.GetValue()); err != nil {
		return nil, status.Error(codes.Unauthenticated, admin.MsgInvalidPassword)
	}
	token, err := s.auth.BuildNewToken()
	if err != nil {
		return nil, status.Error(codes.Internal, "Internal server error")
	}
	return wrapperspb.String(token), nil
}

// ListWebsites курируемые записи
func (s *GalleryService) ListWebsites(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.admin.List(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, admin.MsgLoadFailed)
	}
	return toStruct(map[string]any{"websites": list})
}

// AddWebsite поля description и url
func (s *GalleryService) AddWebsite(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	w, err := s.admin.Add(ctx, field(in, "description"), field(in, "url"))
	s.metrics.AdminMutation("add", err)
	if err != nil {
		return nil, toStatus(err, admin.MsgAddFailed)
	}
	return toStruct(w)
}

// UpdateWebsite поля id, description и url
func (s *GalleryService) UpdateWebsite(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	err := s.admin.Edit(ctx, field(in, "id"), field(in, "description"), field(in, "url"))
	s.metrics.AdminMutation("update", err)
	if err != nil {
		return nil, toStatus(err, admin.MsgUpdateFailed)
	}
	return &emptypb.Empty{}, nil
}

// DeleteWebsite по id
func (s *GalleryService) DeleteWebsite(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	err := s.admin.Delete(ctx, in.GetValue())
	s.metrics.AdminMutation("delete", err)
	if err != nil {
		return nil, toStatus(err, admin.MsgDeleteFailed)
	}
	return &emptypb.Empty{}, nil
}

func field(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, internalerrors.ErrEmptyField):
		return status.Error(codes.InvalidArgument, admin.MsgEmptyFields)
	case errors.Is(err, internalerrors.ErrNotFound):
		return status.Error(codes.NotFound, "website not found")
	default:
		return status.Error(codes.Internal, msg)
	}
}

// toStruct через JSON, чтобы ответы совпадали с HTTP API
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
