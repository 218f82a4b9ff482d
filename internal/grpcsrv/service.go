package grpcsrv

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName полное имя gRPC сервиса
const ServiceName = "bodacious.v1.Gallery"

// Методы, требующие сессии администратора
var adminMethods = map[string]bool{
	FullMethod("ListWebsites"):  true,
	FullMethod("AddWebsite"):    true,
	FullMethod("UpdateWebsite"): true,
	FullMethod("DeleteWebsite"): true,
}

// GalleryServer сервис галереи и курирования. Сообщения - стандартные типы protobuf
type GalleryServer interface {
	FetchWebsites(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Gallery(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Click(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Login(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	ListWebsites(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	AddWebsite(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateWebsite(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteWebsite(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// GalleryServiceDesc описание сервиса для grpc.Server.RegisterService
var GalleryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GalleryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("FetchWebsites", GalleryServer.FetchWebsites),
		unary("Gallery", GalleryServer.Gallery),
		unary("Click", GalleryServer.Click),
		unary("Login", GalleryServer.Login),
		unary("ListWebsites", GalleryServer.ListWebsites),
		unary("AddWebsite", GalleryServer.AddWebsite),
		unary("UpdateWebsite", GalleryServer.UpdateWebsite),
		unary("DeleteWebsite", GalleryServer.DeleteWebsite),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bodacious/v1/gallery.proto",
}

// FullMethod полное имя метода, как его видят перехватчики
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req any, Resp proto.Message](name string, call func(GalleryServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GalleryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GalleryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GalleryClient клиент сервиса
type GalleryClient struct {
	cc grpc.ClientConnInterface
}

func NewGalleryClient(cc grpc.ClientConnInterface) *GalleryClient {
	return &GalleryClient{cc: cc}
}

func (c *GalleryClient) FetchWebsites(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "FetchWebsites", &emptypb.Empty{}, opts...)
}

func (c *GalleryClient) Gallery(ctx context.Context, order string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "Gallery", wrapperspb.String(order), opts...)
}

func (c *GalleryClient) Click(ctx context.Context, url string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "Click", wrapperspb.String(url), opts...)
}

func (c *GalleryClient) Login(ctx context.Context, password string, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, "Login", wrapperspb.String(password), opts...)
}

func (c *GalleryClient) ListWebsites(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "ListWebsites", &emptypb.Empty{}, opts...)
}

func (c *GalleryClient) AddWebsite(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, "AddWebsite", in, opts...)
}

func (c *GalleryClient) UpdateWebsite(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "UpdateWebsite", in, opts...)
}

func (c *GalleryClient) DeleteWebsite(ctx context.Context, id string, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "DeleteWebsite", wrapperspb.String(id), opts...)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
