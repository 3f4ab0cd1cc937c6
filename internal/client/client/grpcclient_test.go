package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeAdmin accepts exactly one access token at a time and rotates it on
// refresh.
type fakeAdmin struct {
	adminapi.UnimplementedAdminServiceServer

	mu          sync.Mutex
	access      string
	refresh     string
	refreshes   int
	loggedOut   string
	update      *adminapi.UpdateSettingsRequest
	pingStatus  string
	fetchErr    error
	refreshFail bool
}

func (f *fakeAdmin) authorize(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if v := md.Get(common.AccessTokenHeaderName); len(v) == 1 && v[0] == f.access && f.access != "" {
		return nil
	}
	return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
}

func (f *fakeAdmin) Ping(context.Context, *adminapi.PingRequest) (*adminapi.PingResponse, error) {
	return &adminapi.PingResponse{Status: f.pingStatus}, nil
}

func (f *fakeAdmin) Login(_ context.Context, in *adminapi.LoginRequest) (*adminapi.TokenResponse, error) {
	if in.Password != "secret" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = "a1", "r1"
	return &adminapi.TokenResponse{AccessToken: "a1", RefreshToken: "r1"}, nil
}

func (f *fakeAdmin) RefreshToken(_ context.Context, in *adminapi.RefreshTokenRequest) (*adminapi.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.refreshFail || in.RefreshToken != f.refresh {
		return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	}
	f.access, f.refresh = "a2", "r2"
	return &adminapi.TokenResponse{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeAdmin) Logout(_ context.Context, in *adminapi.LogoutRequest) (*adminapi.LogoutResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = in.RefreshToken
	return &adminapi.LogoutResponse{}, nil
}

func (f *fakeAdmin) GetSettings(ctx context.Context, _ *adminapi.GetSettingsRequest) (*adminapi.Settings, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	return &adminapi.Settings{Domain: "acme.getbynder.com", PermanentTokenSet: true}, nil
}

func (f *fakeAdmin) UpdateSettings(ctx context.Context, in *adminapi.UpdateSettingsRequest) (*adminapi.UpdateSettingsResponse, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	f.update = in
	return &adminapi.UpdateSettingsResponse{Settings: adminapi.Settings{DefaultSearchTerm: *in.DefaultSearchTerm}}, nil
}

func (f *fakeAdmin) FetchDerivatives(ctx context.Context, _ *adminapi.FetchDerivativesRequest) (*adminapi.FetchDerivativesResponse, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &adminapi.FetchDerivativesResponse{Derivatives: []string{"banner", "thumb"}}, nil
}

func (f *fakeAdmin) SyncUsage(ctx context.Context, _ *adminapi.SyncUsageRequest) (*adminapi.SyncUsageResponse, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	return &adminapi.SyncUsageResponse{Result: adminapi.SyncResult{Status: "ok", Posts: 3, Usages: 5}}, nil
}

func (f *fakeAdmin) SyncStatus(ctx context.Context, _ *adminapi.SyncStatusRequest) (*adminapi.SyncStatusResponse, error) {
	if err := f.authorize(ctx); err != nil {
		return nil, err
	}
	return &adminapi.SyncStatusResponse{State: "scheduled"}, nil
}

func newTestClient(t *testing.T, srv *fakeAdmin) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	adminapi.RegisterAdminServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPing(t *testing.T) {
	ctx := testCtx(t)

	assert.NoError(t, newTestClient(t, &fakeAdmin{pingStatus: "OK"}).Ping(ctx))
	assert.ErrorIs(t, newTestClient(t, &fakeAdmin{pingStatus: "DOWN"}).Ping(ctx), ErrUnavailable)
}

func TestLoginStoresTokensAndNotifies(t *testing.T) {
	ctx := testCtx(t)
	c := newTestClient(t, &fakeAdmin{})

	var seen []Tokens
	c.OnTokens(func(tk Tokens) { seen = append(seen, tk) })

	_, err := c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	tk, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a1", Refresh: "r1"}, tk)
	assert.Equal(t, []Tokens{{Access: "a1", Refresh: "r1"}}, seen)

	s, err := c.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acme.getbynder.com", s.Domain)
	assert.True(t, s.PermanentTokenSet)
}

func TestExpiredTokenIsRefreshedOnce(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{access: "a-new", refresh: "r1"}
	c := newTestClient(t, srv)
	c.SetTokens(Tokens{Access: "a-old", Refresh: "r1"})

	var seen []Tokens
	c.OnTokens(func(tk Tokens) { seen = append(seen, tk) })

	derivatives, err := c.FetchDerivatives(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"banner", "thumb"}, derivatives)
	assert.Equal(t, 1, srv.refreshes)
	assert.Equal(t, []Tokens{{Access: "a2", Refresh: "r2"}}, seen)
	assert.Equal(t, Tokens{Access: "a2", Refresh: "r2"}, c.currentTokens())

	_, err = c.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.refreshes)
}

func TestRefreshFailureSurfacesUnauthorized(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{access: "a-new", refresh: "r1", refreshFail: true}
	c := newTestClient(t, srv)
	c.SetTokens(Tokens{Access: "a-old", Refresh: "r1"})

	_, err := c.SyncUsage(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, srv.refreshes)
}

func TestNoRefreshWithoutRefreshToken(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{access: "a1"}
	c := newTestClient(t, srv)

	_, err := c.GetSettings(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, srv.refreshes)
}

func TestAuthorizedCalls(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{}
	c := newTestClient(t, srv)
	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	term := "logo"
	upd, err := c.UpdateSettings(ctx, &adminapi.UpdateSettingsRequest{DefaultSearchTerm: &term})
	require.NoError(t, err)
	assert.Equal(t, "logo", upd.Settings.DefaultSearchTerm)
	require.NotNil(t, srv.update)
	assert.Nil(t, srv.update.Domain)

	res, err := c.SyncUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminapi.SyncResult{Status: "ok", Posts: 3, Usages: 5}, *res)

	st, err := c.SyncStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", st.State)
}

func TestFetchDerivativesRejected(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{fetchErr: status.Error(codes.FailedPrecondition, "Domain or permanent token not configured!")}
	c := newTestClient(t, srv)
	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	_, err = c.FetchDerivatives(ctx)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "not configured")
}

func TestLogout(t *testing.T) {
	ctx := testCtx(t)
	srv := &fakeAdmin{}
	c := newTestClient(t, srv)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, srv.loggedOut)

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, "r1", srv.loggedOut)
	assert.Equal(t, Tokens{}, c.currentTokens())
}

func TestMapError(t *testing.T) {
	plain := errors.New("plain")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{"permission", status.Error(codes.PermissionDenied, "x"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
		{"rate limited", status.Error(codes.ResourceExhausted, "x"), ErrRateLimited},
		{"precondition", status.Error(codes.FailedPrecondition, "x"), ErrRejected},
		{"invalid", status.Error(codes.InvalidArgument, "x"), ErrRejected},
		{"not a status", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, mapError(nil))
	internal := mapError(status.Error(codes.Internal, "boom"))
	assert.Contains(t, internal.Error(), "rpc error")
}
