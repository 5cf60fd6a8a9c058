package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages are well-known protobuf types so the service needs no generated code.

const (
	ServiceName           = "fnpeaks.PeakService"
	PeakService_GetPeaks  = "/" + ServiceName + "/GetPeaks"
	PeakService_Health    = "/" + ServiceName + "/Health"
	PeakService_ListChans = "/" + ServiceName + "/ListChannels"
)

// -----------------------------------------------------------------------------

// PeakServiceServer is the server API for fnpeaks.PeakService.
type PeakServiceServer interface {
	GetPeaks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListChannels(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// -----------------------------------------------------------------------------

func RegisterPeakServiceServer(s grpc.ServiceRegistrar, srv PeakServiceServer) {
	s.RegisterService(&PeakService_ServiceDesc, srv)
}

// -----------------------------------------------------------------------------

var PeakService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PeakServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPeaks", Handler: getPeaksHandler},
		{MethodName: "Health", Handler: healthHandler},
		{MethodName: "ListChannels", Handler: listChannelsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fnpeaks/peak_service.proto",
}

// -----------------------------------------------------------------------------

func getPeaksHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PeakServiceServer).GetPeaks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PeakService_GetPeaks}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PeakServiceServer).GetPeaks(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------

func healthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PeakServiceServer).Health(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PeakService_Health}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PeakServiceServer).Health(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------

func listChannelsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PeakServiceServer).ListChannels(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PeakService_ListChans}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PeakServiceServer).ListChannels(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

type PeakClient struct {
	cc grpc.ClientConnInterface
}

func NewPeakClient(cc grpc.ClientConnInterface) *PeakClient {
	return &PeakClient{cc: cc}
}

// -----------------------------------------------------------------------------

// GetPeaks asks for the report of [start, end], both in the server's time layout.
func (c *PeakClient) GetPeaks(ctx context.Context, start, end string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"start": start, "end": end})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PeakService_GetPeaks, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (c *PeakClient) Health(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PeakService_Health, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (c *PeakClient) ListChannels(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PeakService_ListChans, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
