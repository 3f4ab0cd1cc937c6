package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/client/client"
	"github.com/dmitrijs2005/bynderpress/internal/client/repositories/session"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const server = "127.0.0.1:50051"

type fakeClient struct {
	client.Client

	tokens    client.Tokens
	onTokens  func(client.Tokens)
	loginErr  error
	logoutErr error
	pingErr   error
	closed    bool
	logouts   int
}

func (f *fakeClient) SetTokens(t client.Tokens)       { f.tokens = t }
func (f *fakeClient) OnTokens(fn func(client.Tokens)) { f.onTokens = fn }
func (f *fakeClient) Ping(context.Context) error      { return f.pingErr }
func (f *fakeClient) Close() error                    { f.closed = true; return nil }

func (f *fakeClient) Login(_ context.Context, username, password string) (client.Tokens, error) {
	if f.loginErr != nil {
		return client.Tokens{}, f.loginErr
	}
	t := client.Tokens{Access: "a-" + username, Refresh: "r-" + username}
	f.tokens = t
	f.onTokens(t)
	return t, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.logouts++
	f.tokens = client.Tokens{}
	return f.logoutErr
}

// refresh simulates the interceptor rotating the pair.
func (f *fakeClient) refresh(t client.Tokens) {
	f.tokens = t
	f.onTokens(t)
}

func setup(t *testing.T) (*authService, *fakeClient, *session.SQLiteRepository) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := session.NewSQLiteRepository(db)
	fc := &fakeClient{}
	a := NewAuthService(fc, repo, server, logging.Nop{}).(*authService)
	a.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return a, fc, repo
}

func TestRestore_NoSession(t *testing.T) {
	a, _, _ := setup(t)

	_, err := a.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoginPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	a, fc, repo := setup(t)

	require.NoError(t, a.Login(ctx, "admin", []byte("secret")))

	s, err := repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, "a-admin", s.AccessToken)
	assert.Equal(t, "r-admin", s.RefreshToken)

	fc.refresh(client.Tokens{Access: "a2", Refresh: "r2"})
	s, err = repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Equal(t, "a2", s.AccessToken)

	b := NewAuthService(&fakeClient{}, repo, server, logging.Nop{}).(*authService)
	user, err := b.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
	assert.Equal(t, client.Tokens{Access: "a2", Refresh: "r2"}, b.client.(*fakeClient).tokens)
}

func TestLoginFailureKeepsPreviousUser(t *testing.T) {
	ctx := context.Background()
	a, fc, repo := setup(t)
	require.NoError(t, a.Login(ctx, "admin", []byte("secret")))

	fc.loginErr = client.ErrUnauthorized
	err := a.Login(ctx, "mallory", []byte("guess"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "admin", a.username)

	s, err := repo.Get(ctx, server)
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)
}

func TestTokensWithoutUserAreNotSaved(t *testing.T) {
	a, fc, repo := setup(t)
	require.Empty(t, a.username)

	fc.refresh(client.Tokens{Access: "x", Refresh: "y"})

	_, err := repo.Get(context.Background(), server)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogoutDropsSessionEvenIfServerFails(t *testing.T) {
	ctx := context.Background()
	a, fc, repo := setup(t)
	require.NoError(t, a.Login(ctx, "admin", []byte("secret")))

	fc.logoutErr = errors.New("server gone")
	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, 1, fc.logouts)
	assert.Empty(t, a.username)

	_, err := repo.Get(ctx, server)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogoutRepositoryError(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	a := NewAuthService(&fakeClient{}, session.NewSQLiteRepository(db), server, logging.Nop{})
	assert.Error(t, a.Logout(ctx))
}

func TestPingAndClose(t *testing.T) {
	ctx := context.Background()
	a, fc, _ := setup(t)

	require.NoError(t, a.Ping(ctx))
	fc.pingErr = client.ErrUnavailable
	assert.ErrorIs(t, a.Ping(ctx), client.ErrUnavailable)

	require.NoError(t, a.Close(ctx))
	assert.True(t, fc.closed)
}
