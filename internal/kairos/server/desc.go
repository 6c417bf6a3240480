package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "kairos.v1.DateFormatService"

// Full method names
const (
	ParseMethod    = "/" + ServiceName + "/Parse"
	FormatMethod   = "/" + ServiceName + "/Format"
	DetectMethod   = "/" + ServiceName + "/Detect"
	PatternsMethod = "/" + ServiceName + "/Patterns"
)

// DateFormatServer is the server API of kairos.v1.DateFormatService. All
// messages are google.protobuf.Struct values; field names are documented on
// the handlers.
type DateFormatServer interface {
	Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Format(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Detect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Patterns(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes kairos.v1.DateFormatService for registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DateFormatServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: unaryHandler(ParseMethod, newStruct, DateFormatServer.Parse)},
		{MethodName: "Format", Handler: unaryHandler(FormatMethod, newStruct, DateFormatServer.Format)},
		{MethodName: "Detect", Handler: unaryHandler(DetectMethod, newStruct, DateFormatServer.Detect)},
		{MethodName: "Patterns", Handler: unaryHandler(PatternsMethod, newEmpty, DateFormatServer.Patterns)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kairos/v1/dateformat.proto",
}

// RegisterDateFormatServer registers srv on s
func RegisterDateFormatServer(s grpc.ServiceRegistrar, srv DateFormatServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newStruct() *structpb.Struct { return &structpb.Struct{} }

func newEmpty() *emptypb.Empty { return &emptypb.Empty{} }

func unaryHandler[Req proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(DateFormatServer, context.Context, Req) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DateFormatServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DateFormatServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
