package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pwakit.IconService"

// Full method names, as seen by interceptors and used by clients.
const (
	LoginMethod      = "/" + ServiceName + "/Login"
	ListIconsMethod  = "/" + ServiceName + "/ListIcons"
	ResyncMethod     = "/" + ServiceName + "/Resync"
	DeleteIconMethod = "/" + ServiceName + "/DeleteIcon"
)

// IconServiceServer is the server API of pwakit.IconService. Messages are
// protobuf well-known types, so no generated code is needed.
type IconServiceServer interface {
	// Login exchanges the admin password for an access token.
	Login(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// ListIcons returns {"icons": [{src, sizes, type}, ...]} for the prefix.
	ListIcons(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// Resync returns {"tracked": [...], "untracked": [...], "skipped": [...]}.
	Resync(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// DeleteIcon returns the deleted root-relative name.
	DeleteIcon(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

func RegisterIconServiceServer(s grpc.ServiceRegistrar, srv IconServiceServer) {
	s.RegisterService(&IconServiceDesc, srv)
}

// unary adapts one typed method to grpc.MethodHandler.
func unary[Req any](method string, call func(IconServiceServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(IconServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		})
	}
}

var IconServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IconServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler: unary(LoginMethod, func(s IconServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.Login(ctx, in)
			}),
		},
		{
			MethodName: "ListIcons",
			Handler: unary(ListIconsMethod, func(s IconServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.ListIcons(ctx, in)
			}),
		},
		{
			MethodName: "Resync",
			Handler: unary(ResyncMethod, func(s IconServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Resync(ctx, in)
			}),
		},
		{
			MethodName: "DeleteIcon",
			Handler: unary(DeleteIconMethod, func(s IconServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.DeleteIcon(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pwakit/icon_service.proto",
}
