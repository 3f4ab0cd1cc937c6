package adminapi

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type pingOnly struct {
	UnimplementedAdminServiceServer
	seen *UpdateSettingsRequest
}

func (pingOnly) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (p *pingOnly) UpdateSettings(_ context.Context, in *UpdateSettingsRequest) (*UpdateSettingsResponse, error) {
	p.seen = in
	return &UpdateSettingsResponse{
		Settings: Settings{Domain: *in.Domain},
		Notices:  []Notice{{Field: "image_derivative", Message: "nope"}},
	}, nil
}

func dial(t *testing.T, srv AdminServiceServer, opts ...grpc.ServerOption) AdminServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterAdminServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewAdminServiceClient(conn)
}

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	b, err := c.Marshal(&LoginRequest{Username: "admin", Password: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"admin","password":"p"}`, string(b))

	var out LoginRequest
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, "admin", out.Username)
}

func TestClientServerRoundTrip(t *testing.T) {
	srv := &pingOnly{}
	client := dial(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	domain := "acme.getbynder.com"
	resp, err := client.UpdateSettings(ctx, &UpdateSettingsRequest{Domain: &domain})
	require.NoError(t, err)
	assert.Equal(t, domain, resp.Settings.Domain)
	assert.Equal(t, []Notice{{Field: "image_derivative", Message: "nope"}}, resp.Notices)
	require.NotNil(t, srv.seen)
	assert.Nil(t, srv.seen.PermanentToken)

	_, err = client.SyncUsage(ctx, &SyncUsageRequest{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var methods []string
	client := dial(t, &pingOnly{}, grpc.UnaryInterceptor(
		func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			methods = append(methods, info.FullMethod)
			return handler(ctx, req)
		}))

	_, err := client.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{MethodPing}, methods)
}

func TestServiceDescMethodNames(t *testing.T) {
	var got []string
	for _, m := range AdminService_ServiceDesc.Methods {
		got = append(got, "/"+ServiceName+"/"+m.MethodName)
	}
	assert.Equal(t, []string{
		MethodPing, MethodLogin, MethodRefreshToken, MethodLogout, MethodGetSettings,
		MethodUpdateSettings, MethodFetchDerivatives, MethodSyncUsage, MethodSyncStatus,
	}, got)
}
