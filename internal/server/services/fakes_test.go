package services

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	postsrepo "github.com/dmitrijs2005/bynderpress/internal/server/repositories/posts"
	refreshtokensrepo "github.com/dmitrijs2005/bynderpress/internal/server/repositories/refreshtokens"
	settingsrepo "github.com/dmitrijs2005/bynderpress/internal/server/repositories/settings"
	usersrepo "github.com/dmitrijs2005/bynderpress/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// fakeSQL exposes the sqlmock expectations of a service's *sql.DB.
type fakeSQL struct {
	mock sqlmock.Sqlmock
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*models.User{}
	}
	u.ID = "id-" + u.UserName
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byName[name]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Count(context.Context) (int, error) { return len(f.byName), nil }

// --- refresh tokens ---

type fakeRefreshRepo struct {
	tokens     map[string]*models.RefreshToken
	findErr    error
	delErr     error
	createErr  error
	expiredErr error
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, expires time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.tokens == nil {
		f.tokens = map[string]*models.RefreshToken{}
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: expires}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if rt, ok := f.tokens[token]; ok {
		return rt, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	if f.expiredErr != nil {
		return 0, f.expiredErr
	}
	var n int64
	for k, rt := range f.tokens {
		if rt.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- settings ---

type fakeSettingsRepo struct {
	rec      *models.SettingsRecord
	getErr   error
	saveErr  error
	derivErr error

	saves      int
	derivSaves int
	lastDerivs []string
}

func (f *fakeSettingsRepo) Get(context.Context) (*models.SettingsRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.rec == nil {
		return nil, common.ErrorNotFound
	}
	cp := *f.rec
	return &cp, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *models.SettingsRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	cp := *s
	f.rec = &cp
	return nil
}

func (f *fakeSettingsRepo) SaveDerivatives(_ context.Context, d []string) error {
	if f.derivErr != nil {
		return f.derivErr
	}
	f.derivSaves++
	f.lastDerivs = d
	if f.rec == nil {
		f.rec = &models.SettingsRecord{}
	}
	f.rec.AvailableDerivatives = d
	return nil
}

// --- posts ---

type fakePostsRepo struct {
	posts      map[int64]*models.Post
	nextID     int64
	createErr  error
	listErr    error
	lastFilter postsrepo.Filter
}

func (f *fakePostsRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.posts == nil {
		f.posts = map[int64]*models.Post{}
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.posts[p.ID] = &cp
	return p, nil
}

func (f *fakePostsRepo) SetGUID(_ context.Context, id int64, guid string) error {
	p, ok := f.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.GUID = guid
	return nil
}

func (f *fakePostsRepo) Update(_ context.Context, p *models.Post) (*models.Post, error) {
	stored, ok := f.posts[p.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Status, stored.Title, stored.Content = p.Status, p.Title, p.Content
	cp := *stored
	return &cp, nil
}

func (f *fakePostsRepo) Get(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostsRepo) List(_ context.Context, filter postsrepo.Filter) ([]*models.Post, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Post
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.posts[id]
		if !ok || slices.Contains(filter.ExcludeStatuses, p.Status) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePostsRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.posts, id)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	s *fakeSettingsRepo
	p *fakePostsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		r: &fakeRefreshRepo{},
		s: &fakeSettingsRepo{},
		p: &fakePostsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Settings(dbx.DBTX) settingsrepo.Repository           { return m.s }
func (m *fakeRepoManager) Posts(dbx.DBTX) postsrepo.Repository                 { return m.p }

// --- portal ---

type fakePortal struct {
	out   []bynder.Derivative
	err   error
	calls int
	creds bynder.Credentials
}

func (f *fakePortal) Derivatives(_ context.Context, creds bynder.Credentials) ([]bynder.Derivative, error) {
	f.calls++
	f.creds = creds
	return f.out, f.err
}
