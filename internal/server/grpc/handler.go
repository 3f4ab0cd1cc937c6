package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/bynderpress/internal/adminapi"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
	"github.com/dmitrijs2005/bynderpress/internal/server/usage"
)

// toStatus maps service errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, "refresh token expired")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrNotConfigured):
		return status.Error(codes.FailedPrecondition, services.MsgNotConfigured)
	case errors.Is(err, usage.ErrNotScheduled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrFetchFailed):
		return status.Error(codes.Unavailable, services.MsgFetchFailed)
	case errors.Is(err, common.ErrSyncFailed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Ping(ctx context.Context, req *adminapi.PingRequest) (*adminapi.PingResponse, error) {
	return &adminapi.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *adminapi.LoginRequest) (*adminapi.TokenResponse, error) {

	if !s.loginLimiter.Allow() {
		s.logger.Warn(ctx, "login rate limited", "username", req.Username)
		return nil, status.Error(codes.ResourceExhausted, "too many login attempts")
	}

	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Warn(ctx, "login rejected", "username", req.Username)
		}
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Logged in", "username", req.Username)
	return &adminapi.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *adminapi.RefreshTokenRequest) (*adminapi.TokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminapi.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *adminapi.LogoutRequest) (*adminapi.LogoutResponse, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &adminapi.LogoutResponse{}, nil
}

func toSettings(st *services.Settings) adminapi.Settings {
	return adminapi.Settings{
		Domain:               st.Domain,
		PermanentTokenSet:    st.PermanentToken != "",
		DefaultSearchTerm:    st.DefaultSearchTerm,
		ImageDerivative:      st.ImageDerivative,
		AvailableDerivatives: st.AvailableDerivatives,
		DerivativesFetched:   st.DerivativesFetched(),
	}
}

func (s *GRPCServer) GetSettings(ctx context.Context, req *adminapi.GetSettingsRequest) (*adminapi.Settings, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	out := toSettings(st)
	return &out, nil
}

func (s *GRPCServer) UpdateSettings(ctx context.Context, req *adminapi.UpdateSettingsRequest) (*adminapi.UpdateSettingsResponse, error) {
	st, notices, err := s.settings.Save(ctx, services.SettingsUpdate{
		Domain:            req.Domain,
		PermanentToken:    req.PermanentToken,
		DefaultSearchTerm: req.DefaultSearchTerm,
		ImageDerivative:   req.ImageDerivative,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &adminapi.UpdateSettingsResponse{Settings: toSettings(st)}
	for _, n := range notices {
		resp.Notices = append(resp.Notices, adminapi.Notice{Field: n.Field, Message: n.Message})
	}
	return resp, nil
}

func (s *GRPCServer) FetchDerivatives(ctx context.Context, req *adminapi.FetchDerivativesRequest) (*adminapi.FetchDerivativesResponse, error) {
	derivatives, err := s.settings.FetchDerivatives(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminapi.FetchDerivativesResponse{Derivatives: derivatives}, nil
}

func toSyncResult(r usage.Result) adminapi.SyncResult {
	return adminapi.SyncResult{
		Status:     r.Status,
		Posts:      r.Posts,
		Usages:     r.Usages,
		StartedAt:  r.StartedAt,
		Duration:   r.Duration,
		ArchiveKey: r.ArchiveKey,
		Error:      r.Error,
	}
}

// SyncUsage queues a run on the scheduler and waits for it.
func (s *GRPCServer) SyncUsage(ctx context.Context, req *adminapi.SyncUsageRequest) (*adminapi.SyncUsageResponse, error) {
	res, err := s.sync.Trigger(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &adminapi.SyncUsageResponse{Result: toSyncResult(res)}, nil
}

func (s *GRPCServer) SyncStatus(ctx context.Context, req *adminapi.SyncStatusRequest) (*adminapi.SyncStatusResponse, error) {
	st := s.sync.Status()
	resp := &adminapi.SyncStatusResponse{State: string(st.State), NextRun: st.NextRun}
	if st.LastRun != nil {
		last := toSyncResult(*st.LastRun)
		resp.LastRun = &last
	}
	return resp, nil
}
