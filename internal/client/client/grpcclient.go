package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn *grpc.ClientConn
	api  adminapi.AdminServiceClient

	mu       sync.Mutex
	tokens   Tokens
	onTokens func(Tokens)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// NewGRPCClient connects to endpoint without TLS. Extra options are
// appended, which lets tests swap the dialer.
func NewGRPCClient(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.api = adminapi.NewAdminServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) currentTokens() Tokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// SetTokens installs a token pair, for example one restored from the
// session database.
func (c *GRPCClient) SetTokens(t Tokens) {
	c.mu.Lock()
	c.tokens = t
	c.mu.Unlock()
}

// OnTokens registers fn to be called whenever the pair changes through a
// login or a refresh.
func (c *GRPCClient) OnTokens(fn func(Tokens)) {
	c.mu.Lock()
	c.onTokens = fn
	c.mu.Unlock()
}

func (c *GRPCClient) storeTokens(t Tokens) {
	c.mu.Lock()
	c.tokens = t
	fn := c.onTokens
	c.mu.Unlock()

	if fn != nil {
		fn(t)
	}
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	tokens := c.currentTokens()
	err := invoker(withAccessToken(ctx, tokens.Access), method, req, reply, cc, opts...)
	if err == nil || method == adminapi.MethodRefreshToken {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if tokens.Refresh == "" {
		return err
	}

	resp, err := c.api.RefreshToken(ctx, &adminapi.RefreshTokenRequest{RefreshToken: tokens.Refresh})
	if err != nil {
		return err
	}
	refreshed := Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	c.storeTokens(refreshed)

	return invoker(withAccessToken(ctx, refreshed.Access), method, req, reply, cc, opts...)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.api.Ping(ctx, &adminapi.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Login(ctx context.Context, username, password string) (Tokens, error) {
	resp, err := c.api.Login(ctx, &adminapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return Tokens{}, mapError(err)
	}

	t := Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	c.storeTokens(t)
	return t, nil
}

// Logout revokes the refresh token on the server and forgets the pair
// locally even when the server call fails.
func (c *GRPCClient) Logout(ctx context.Context) error {
	tokens := c.currentTokens()
	c.SetTokens(Tokens{})

	if tokens.Refresh == "" {
		return nil
	}
	if _, err := c.api.Logout(ctx, &adminapi.LogoutRequest{RefreshToken: tokens.Refresh}); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *GRPCClient) GetSettings(ctx context.Context) (*adminapi.Settings, error) {
	resp, err := c.api.GetSettings(ctx, &adminapi.GetSettingsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) UpdateSettings(ctx context.Context, req *adminapi.UpdateSettingsRequest) (*adminapi.UpdateSettingsResponse, error) {
	resp, err := c.api.UpdateSettings(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) FetchDerivatives(ctx context.Context) ([]string, error) {
	resp, err := c.api.FetchDerivatives(ctx, &adminapi.FetchDerivativesRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Derivatives, nil
}

func (c *GRPCClient) SyncUsage(ctx context.Context) (*adminapi.SyncResult, error) {
	resp, err := c.api.SyncUsage(ctx, &adminapi.SyncUsageRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Result, nil
}

func (c *GRPCClient) SyncStatus(ctx context.Context) (*adminapi.SyncStatusResponse, error) {
	resp, err := c.api.SyncStatus(ctx, &adminapi.SyncStatusRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrRateLimited, st.Message())
	case codes.FailedPrecondition, codes.InvalidArgument, codes.NotFound:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
