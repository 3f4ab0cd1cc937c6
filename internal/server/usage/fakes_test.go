package usage

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

var errBoom = errors.New("boom")

type fakeSettings struct {
	s   *services.Settings
	err error
}

func (f fakeSettings) Load(context.Context) (*services.Settings, error) { return f.s, f.err }

type fakePosts struct {
	posts []*models.Post
	err   error
	calls int
}

func (f *fakePosts) UsageCandidates(context.Context) ([]*models.Post, error) {
	f.calls++
	return f.posts, f.err
}

type fakePortal struct {
	err     error
	creds   bynder.Credentials
	reports []bynder.UsageReport
}

func (f *fakePortal) SyncUsage(_ context.Context, creds bynder.Credentials, r bynder.UsageReport) error {
	f.creds = creds
	f.reports = append(f.reports, r)
	return f.err
}

type fakeArchiver struct {
	key     string
	err     error
	reports []bynder.UsageReport
}

func (f *fakeArchiver) Archive(_ context.Context, r bynder.UsageReport) (string, error) {
	f.reports = append(f.reports, r)
	return f.key, f.err
}

// fakeRunner counts runs. With block set, each run waits for a value on it
// or for cancellation.
type fakeRunner struct {
	mu    sync.Mutex
	calls int
	block chan struct{}
	err   error
}

func (f *fakeRunner) Run(ctx context.Context) (Result, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return Result{Status: "error"}, ctx.Err()
		}
	}
	return Result{Status: "ok", Usages: n}, f.err
}

func (f *fakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
