package usage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/metrics"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

var configured = &services.Settings{Domain: "acme.getbynder.com", PermanentToken: "tok"}

func TestService_Run(t *testing.T) {
	posts := &fakePosts{posts: []*models.Post{
		post(1, "https://site/?p=1", "Hello", `<figure data-bynder-id="A"></figure>`),
		post(2, "https://site/?p=2", "Empty", ""),
	}}
	portal := &fakePortal{}
	archiver := &fakeArchiver{key: "usage-sync/2026/01/02/x.json"}
	svc := NewService(fakeSettings{s: configured}, posts, portal, archiver, logging.Nop{})

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := start
	svc.now = func() time.Time { t := tick; tick = tick.Add(time.Second); return t }

	res, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, metrics.StatusOK, res.Status)
	assert.Equal(t, 2, res.Posts)
	assert.Equal(t, 1, res.Usages)
	assert.Equal(t, start, res.StartedAt)
	assert.Equal(t, time.Second, res.Duration)
	assert.Equal(t, "usage-sync/2026/01/02/x.json", res.ArchiveKey)

	require.Len(t, portal.reports, 1)
	assert.Equal(t, bynder.Credentials{Domain: "acme.getbynder.com", Token: "tok"}, portal.creds)
	assert.Equal(t, []string{"https://site/?p=1", "https://site/?p=2"}, portal.reports[0].URIs)
	assert.Equal(t, portal.reports, archiver.reports)
}

func TestService_RunSkipsWithoutCredentials(t *testing.T) {
	for name, s := range map[string]*services.Settings{
		"empty":     {},
		"no token":  {Domain: "acme.getbynder.com"},
		"no domain": {PermanentToken: "tok"},
	} {
		t.Run(name, func(t *testing.T) {
			posts := &fakePosts{}
			portal := &fakePortal{}
			svc := NewService(fakeSettings{s: s}, posts, portal, nil, logging.Nop{})

			res, err := svc.Run(context.Background())
			assert.ErrorIs(t, err, common.ErrNotConfigured)
			assert.Equal(t, metrics.StatusSkipped, res.Status)
			assert.Zero(t, posts.calls)
			assert.Empty(t, portal.reports)
		})
	}
}

func TestService_RunErrors(t *testing.T) {
	t.Run("settings", func(t *testing.T) {
		svc := NewService(fakeSettings{err: errBoom}, &fakePosts{}, &fakePortal{}, nil, logging.Nop{})
		res, err := svc.Run(context.Background())
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, metrics.StatusError, res.Status)
		assert.Contains(t, res.Error, "boom")
	})

	t.Run("posts", func(t *testing.T) {
		portal := &fakePortal{}
		svc := NewService(fakeSettings{s: configured}, &fakePosts{err: errBoom}, portal, nil, logging.Nop{})
		_, err := svc.Run(context.Background())
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, portal.reports)
	})

	t.Run("portal", func(t *testing.T) {
		archiver := &fakeArchiver{}
		svc := NewService(fakeSettings{s: configured}, &fakePosts{}, &fakePortal{err: errBoom}, archiver, logging.Nop{})
		res, err := svc.Run(context.Background())
		assert.ErrorIs(t, err, common.ErrSyncFailed)
		assert.Equal(t, metrics.StatusError, res.Status)
		assert.Empty(t, archiver.reports)
	})
}

func TestService_ArchiveFailureDoesNotFailRun(t *testing.T) {
	svc := NewService(fakeSettings{s: configured}, &fakePosts{}, &fakePortal{}, &fakeArchiver{err: errBoom}, logging.Nop{})

	res, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, metrics.StatusOK, res.Status)
	assert.Empty(t, res.ArchiveKey)
}
