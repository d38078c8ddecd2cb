package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "posting.v1.PostingService"

// Full method names, for clients invoking the service without stubs.
const (
	MethodExtract  = "/" + ServiceName + "/Extract"
	MethodValidate = "/" + ServiceName + "/Validate"
	MethodSubmit   = "/" + ServiceName + "/Submit"
	MethodStatus   = "/" + ServiceName + "/Status"
)

// PostingServiceServer is the server API for posting.v1.PostingService.
// Messages are protobuf well-known types, so no generated code is needed.
type PostingServiceServer interface {
	Extract(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Validate(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Submit(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes posting.v1.PostingService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Extract",
			Handler:    unary(MethodExtract, PostingServiceServer.Extract),
		},
		{
			MethodName: "Validate",
			Handler:    unary(MethodValidate, PostingServiceServer.Validate),
		},
		{
			MethodName: "Submit",
			Handler:    unary(MethodSubmit, PostingServiceServer.Submit),
		},
		{
			MethodName: "Status",
			Handler:    unary(MethodStatus, PostingServiceServer.Status),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "posting/v1/posting.proto",
}

// Register mounts srv on s.
func Register(s grpc.ServiceRegistrar, srv PostingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the method handler a generated _PostingService_X_Handler
// would contain.
func unary[Req any, PReq interface {
	*Req
	proto.Message
}](fullMethod string, call func(PostingServiceServer, context.Context, PReq) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PostingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PostingServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}
