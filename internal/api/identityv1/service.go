package identityv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "joinflow.identity.v1.IdentityService"

const (
	CheckExistenceFullMethodName    = "/" + ServiceName + "/CheckExistence"
	RequestSigninLinkFullMethodName = "/" + ServiceName + "/RequestSigninLink"
	CreateAccountFullMethodName     = "/" + ServiceName + "/CreateAccount"
	PingFullMethodName              = "/" + ServiceName + "/Ping"
)

type message interface {
	Marshal() (*structpb.Struct, error)
	Unmarshal(*structpb.Struct) error
}

// IdentityServiceClient is the client API for IdentityService.
type IdentityServiceClient interface {
	CheckExistence(ctx context.Context, in *CheckExistenceRequest, opts ...grpc.CallOption) (*CheckExistenceResponse, error)
	RequestSigninLink(ctx context.Context, in *RequestSigninLinkRequest, opts ...grpc.CallOption) (*RequestSigninLinkResponse, error)
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type identityServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIdentityServiceClient(cc grpc.ClientConnInterface) IdentityServiceClient {
	return &identityServiceClient{cc: cc}
}

func (c *identityServiceClient) invoke(ctx context.Context, method string, in, out message, opts ...grpc.CallOption) error {
	req, err := in.Marshal()
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	resp := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, method, req, resp, opts...); err != nil {
		return err
	}
	if err := out.Unmarshal(resp); err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	return nil
}

func (c *identityServiceClient) CheckExistence(ctx context.Context, in *CheckExistenceRequest, opts ...grpc.CallOption) (*CheckExistenceResponse, error) {
	out := &CheckExistenceResponse{}
	if err := c.invoke(ctx, CheckExistenceFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityServiceClient) RequestSigninLink(ctx context.Context, in *RequestSigninLinkRequest, opts ...grpc.CallOption) (*RequestSigninLinkResponse, error) {
	out := &RequestSigninLinkResponse{}
	if err := c.invoke(ctx, RequestSigninLinkFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	out := &CreateAccountResponse{}
	if err := c.invoke(ctx, CreateAccountFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *identityServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := &PingResponse{}
	if err := c.invoke(ctx, PingFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IdentityServiceServer is the server API for IdentityService.
// Implementations must embed UnimplementedIdentityServiceServer.
type IdentityServiceServer interface {
	CheckExistence(context.Context, *CheckExistenceRequest) (*CheckExistenceResponse, error)
	RequestSigninLink(context.Context, *RequestSigninLinkRequest) (*RequestSigninLinkResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	mustEmbedUnimplementedIdentityServiceServer()
}

type UnimplementedIdentityServiceServer struct{}

func (UnimplementedIdentityServiceServer) CheckExistence(context.Context, *CheckExistenceRequest) (*CheckExistenceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckExistence not implemented")
}
func (UnimplementedIdentityServiceServer) RequestSigninLink(context.Context, *RequestSigninLinkRequest) (*RequestSigninLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestSigninLink not implemented")
}
func (UnimplementedIdentityServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedIdentityServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedIdentityServiceServer) mustEmbedUnimplementedIdentityServiceServer() {}

func RegisterIdentityServiceServer(s grpc.ServiceRegistrar, srv IdentityServiceServer) {
	s.RegisterService(&IdentityService_ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodDesc handler. The
// interceptor sees the wire Struct; conversion happens inside the handler.
func unary[Req any, Resp message, PReq interface {
	*Req
	message
}](fullMethod string, call func(IdentityServiceServer, context.Context, PReq) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &structpb.Struct{}
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			typed := PReq(new(Req))
			if err := typed.Unmarshal(req.(*structpb.Struct)); err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}
			resp, err := call(srv.(IdentityServiceServer), ctx, typed)
			if err != nil {
				return nil, err
			}
			out, err := resp.Marshal()
			if err != nil {
				return nil, status.Error(codes.Internal, err.Error())
			}
			return out, nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

var IdentityService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IdentityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CheckExistence",
			Handler: unary(CheckExistenceFullMethodName, func(s IdentityServiceServer, ctx context.Context, in *CheckExistenceRequest) (*CheckExistenceResponse, error) {
				return s.CheckExistence(ctx, in)
			}),
		},
		{
			MethodName: "RequestSigninLink",
			Handler: unary(RequestSigninLinkFullMethodName, func(s IdentityServiceServer, ctx context.Context, in *RequestSigninLinkRequest) (*RequestSigninLinkResponse, error) {
				return s.RequestSigninLink(ctx, in)
			}),
		},
		{
			MethodName: "CreateAccount",
			Handler: unary(CreateAccountFullMethodName, func(s IdentityServiceServer, ctx context.Context, in *CreateAccountRequest) (*CreateAccountResponse, error) {
				return s.CreateAccount(ctx, in)
			}),
		},
		{
			MethodName: "Ping",
			Handler: unary(PingFullMethodName, func(s IdentityServiceServer, ctx context.Context, in *PingRequest) (*PingResponse, error) {
				return s.Ping(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "joinflow/identity/v1/identity.proto",
}
