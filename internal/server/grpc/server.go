// Package grpc serves the bynderctl admin API.
package grpc

import (
	"context"
	"net"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
	"github.com/dmitrijs2005/bynderpress/internal/server/usage"
)

type UserManager interface {
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type SettingsManager interface {
	Load(ctx context.Context) (*services.Settings, error)
	Save(ctx context.Context, u services.SettingsUpdate) (*services.Settings, []services.Notice, error)
	FetchDerivatives(ctx context.Context) ([]string, error)
}

type SyncController interface {
	Trigger(ctx context.Context) (usage.Result, error)
	Status() usage.Status
}

// Login attempts allowed per second, with a small burst.
const (
	loginRate  = rate.Limit(1)
	loginBurst = 5
)

type GRPCServer struct {
	adminapi.UnimplementedAdminServiceServer
	address      string
	users        UserManager
	settings     SettingsManager
	sync         SyncController
	logger       logging.Logger
	jwtSecret    []byte
	loginLimiter *rate.Limiter
}

func NewGRPCServer(a string, l logging.Logger, us UserManager, ss SettingsManager, sc SyncController, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		users:        us,
		settings:     ss,
		sync:         sc,
		jwtSecret:    []byte(secretKey),
		loginLimiter: rate.NewLimiter(loginRate, loginBurst),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	adminapi.RegisterAdminServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(10 * time.Second):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
