package adminapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "bynderpress.admin.v1.AdminService"

// Full method names, as seen by interceptors.
const (
	MethodPing             = "/" + ServiceName + "/Ping"
	MethodLogin            = "/" + ServiceName + "/Login"
	MethodRefreshToken     = "/" + ServiceName + "/RefreshToken"
	MethodLogout           = "/" + ServiceName + "/Logout"
	MethodGetSettings      = "/" + ServiceName + "/GetSettings"
	MethodUpdateSettings   = "/" + ServiceName + "/UpdateSettings"
	MethodFetchDerivatives = "/" + ServiceName + "/FetchDerivatives"
	MethodSyncUsage        = "/" + ServiceName + "/SyncUsage"
	MethodSyncStatus       = "/" + ServiceName + "/SyncStatus"
)

type AdminServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetSettings(context.Context, *GetSettingsRequest) (*Settings, error)
	UpdateSettings(context.Context, *UpdateSettingsRequest) (*UpdateSettingsResponse, error)
	FetchDerivatives(context.Context, *FetchDerivativesRequest) (*FetchDerivativesResponse, error)
	SyncUsage(context.Context, *SyncUsageRequest) (*SyncUsageResponse, error)
	SyncStatus(context.Context, *SyncStatusRequest) (*SyncStatusResponse, error)
}

// UnimplementedAdminServiceServer answers every method with codes.Unimplemented.
type UnimplementedAdminServiceServer struct{}

func (UnimplementedAdminServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedAdminServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAdminServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedAdminServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedAdminServiceServer) GetSettings(context.Context, *GetSettingsRequest) (*Settings, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSettings not implemented")
}
func (UnimplementedAdminServiceServer) UpdateSettings(context.Context, *UpdateSettingsRequest) (*UpdateSettingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateSettings not implemented")
}
func (UnimplementedAdminServiceServer) FetchDerivatives(context.Context, *FetchDerivativesRequest) (*FetchDerivativesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchDerivatives not implemented")
}
func (UnimplementedAdminServiceServer) SyncUsage(context.Context, *SyncUsageRequest) (*SyncUsageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SyncUsage not implemented")
}
func (UnimplementedAdminServiceServer) SyncStatus(context.Context, *SyncStatusRequest) (*SyncStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SyncStatus not implemented")
}

// unary adapts a typed server method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(AdminServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdminServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdminServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", AdminServiceServer.Ping),
		unary("Login", AdminServiceServer.Login),
		unary("RefreshToken", AdminServiceServer.RefreshToken),
		unary("Logout", AdminServiceServer.Logout),
		unary("GetSettings", AdminServiceServer.GetSettings),
		unary("UpdateSettings", AdminServiceServer.UpdateSettings),
		unary("FetchDerivatives", AdminServiceServer.FetchDerivatives),
		unary("SyncUsage", AdminServiceServer.SyncUsage),
		unary("SyncStatus", AdminServiceServer.SyncStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bynderpress/admin/v1/admin.json",
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

type AdminServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*Settings, error)
	UpdateSettings(ctx context.Context, in *UpdateSettingsRequest, opts ...grpc.CallOption) (*UpdateSettingsResponse, error)
	FetchDerivatives(ctx context.Context, in *FetchDerivativesRequest, opts ...grpc.CallOption) (*FetchDerivativesResponse, error)
	SyncUsage(ctx context.Context, in *SyncUsageRequest, opts ...grpc.CallOption) (*SyncUsageResponse, error)
	SyncStatus(ctx context.Context, in *SyncStatusRequest, opts ...grpc.CallOption) (*SyncStatusResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *adminServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *adminServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *adminServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *adminServiceClient) GetSettings(ctx context.Context, in *GetSettingsRequest, opts ...grpc.CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c.cc, MethodGetSettings, in, opts)
}

func (c *adminServiceClient) UpdateSettings(ctx context.Context, in *UpdateSettingsRequest, opts ...grpc.CallOption) (*UpdateSettingsResponse, error) {
	return invoke[UpdateSettingsResponse](ctx, c.cc, MethodUpdateSettings, in, opts)
}

func (c *adminServiceClient) FetchDerivatives(ctx context.Context, in *FetchDerivativesRequest, opts ...grpc.CallOption) (*FetchDerivativesResponse, error) {
	return invoke[FetchDerivativesResponse](ctx, c.cc, MethodFetchDerivatives, in, opts)
}

func (c *adminServiceClient) SyncUsage(ctx context.Context, in *SyncUsageRequest, opts ...grpc.CallOption) (*SyncUsageResponse, error) {
	return invoke[SyncUsageResponse](ctx, c.cc, MethodSyncUsage, in, opts)
}

func (c *adminServiceClient) SyncStatus(ctx context.Context, in *SyncStatusRequest, opts ...grpc.CallOption) (*SyncStatusResponse, error) {
	return invoke[SyncStatusResponse](ctx, c.cc, MethodSyncStatus, in, opts)
}
