package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/metrics"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

type SettingsLoader interface {
	Load(ctx context.Context) (*services.Settings, error)
}

type PostSource interface {
	UsageCandidates(ctx context.Context) ([]*models.Post, error)
}

// Syncer submits a report to the portal.
type Syncer interface {
	SyncUsage(ctx context.Context, creds bynder.Credentials, report bynder.UsageReport) error
}

// Archiver keeps a copy of every submitted report.
type Archiver interface {
	Archive(ctx context.Context, report bynder.UsageReport) (string, error)
}

// Result describes one finished run.
type Result struct {
	Status     string        `json:"status"`
	Posts      int           `json:"posts"`
	Usages     int           `json:"usages"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	ArchiveKey string        `json:"archive_key,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type Service struct {
	settings SettingsLoader
	posts    PostSource
	portal   Syncer
	archiver Archiver
	log      logging.Logger
	now      func() time.Time
}

// NewService wires a run. archiver may be nil.
func NewService(settings SettingsLoader, posts PostSource, portal Syncer, archiver Archiver, log logging.Logger) *Service {
	return &Service{
		settings: settings,
		posts:    posts,
		portal:   portal,
		archiver: archiver,
		log:      log.With("module", "usage"),
		now:      time.Now,
	}
}

// Run performs one sync. Without a domain or token it returns a skipped
// result together with common.ErrNotConfigured and sends nothing.
func (s *Service) Run(ctx context.Context) (Result, error) {
	res := Result{StartedAt: s.now()}

	res, err := s.run(ctx, res)
	res.Duration = s.now().Sub(res.StartedAt)

	switch {
	case errors.Is(err, common.ErrNotConfigured):
		res.Status = metrics.StatusSkipped
		s.log.Debug(ctx, "usage sync skipped, integration not configured")
	case err != nil:
		res.Status = metrics.StatusError
		res.Error = err.Error()
		s.log.Error(ctx, "usage sync failed", "error", err)
	default:
		res.Status = metrics.StatusOK
		s.log.Info(ctx, "usage sync finished", "posts", res.Posts, "usages", res.Usages, "duration", res.Duration)
	}
	metrics.RecordSync(res.Status, res.Usages, res.Duration)

	return res, err
}

func (s *Service) run(ctx context.Context, res Result) (Result, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("error loading settings: %w", err)
	}
	creds := settings.Credentials()
	if !creds.Complete() {
		return res, common.ErrNotConfigured
	}

	posts, err := s.posts.UsageCandidates(ctx)
	if err != nil {
		return res, fmt.Errorf("error listing posts: %w", err)
	}

	report, err := BuildReport(posts)
	if err != nil {
		return res, err
	}
	res.Posts = len(posts)
	res.Usages = len(report.Usages)

	if err := s.portal.SyncUsage(ctx, creds, report); err != nil {
		return res, fmt.Errorf("%w: %v", common.ErrSyncFailed, err)
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, report)
		if err != nil {
			metrics.RecordArchive(metrics.StatusError)
			s.log.Warn(ctx, "usage report not archived", "error", err)
		} else {
			metrics.RecordArchive(metrics.StatusOK)
			res.ArchiveKey = key
		}
	}

	return res, nil
}
