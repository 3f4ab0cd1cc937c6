// Package server wires the bynderpress components together and runs them:
// the admin HTTP server, the admin gRPC server, and the usage sync
// scheduler, all sharing one PostgreSQL pool.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bynderpress/internal/buildinfo"
	"github.com/dmitrijs2005/bynderpress/internal/bynder"
	"github.com/dmitrijs2005/bynderpress/internal/cryptox"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/config"
	gs "github.com/dmitrijs2005/bynderpress/internal/server/grpc"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
	"github.com/dmitrijs2005/bynderpress/internal/server/usage"
	"github.com/dmitrijs2005/bynderpress/internal/server/web"
)

// tokenPurgeInterval is how often expired refresh tokens are removed.
const tokenPurgeInterval = time.Hour

var (
	openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
		return dbx.Open(ctx, repomanager.DriverName, dsn, dbx.PoolOptions{MaxOpenConns: 10, ConnMaxLifetime: 30 * time.Minute})
	}

	newArchiver = func(ctx context.Context, c usage.S3Config) (usage.Archiver, error) {
		return usage.NewS3Archiver(ctx, c)
	}
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	users     *services.UserService
	scheduler *usage.Scheduler
	http      *web.Server
	grpc      *gs.GRPCServer
}

// NewApp opens the database, applies migrations and builds every component.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager(), bynder.NewClient())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, portal *bynder.Client) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	sealer, err := cryptox.NewSealer(cryptox.DeriveSettingsKey(c.SealingSecret))
	if err != nil {
		return nil, fmt.Errorf("sealer init error: %w", err)
	}

	users := services.NewUserService(db, rm, c, logger)
	if err := users.EnsureAdmin(ctx, c.AdminUser, c.AdminPassword); err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	settings := services.NewSettingsService(db, rm, sealer, portal, logger)
	posts := services.NewPostService(db, rm, c.SiteURL, logger)
	editor := services.NewEditorService(settings, c.Language)

	var archiver usage.Archiver
	if c.ArchiveEnabled() {
		archiver, err = newArchiver(ctx, usage.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		logger.Info(ctx, "usage reports are archived", "bucket", c.S3Bucket)
	}

	runner := usage.NewService(settings, posts, portal, archiver, logger)
	scheduler := usage.NewScheduler(runner, c.SyncInterval, logger)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		users:     users,
		scheduler: scheduler,
		http:      web.NewServer(c.EndpointAddrHTTP, logger, settings, editor, posts, users),
		grpc:      gs.NewGRPCServer(c.EndpointAddrGRPC, logger, users, settings, scheduler, c.SecretKey),
	}, nil
}

// Run blocks until a termination signal arrives or a server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	app.scheduler.Schedule(ctx)

	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.grpc.Run(ctx) })
	g.Go(func() error {
		app.purgeTokens(ctx)
		return nil
	})

	err := g.Wait()

	app.scheduler.Clear()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "db close error", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) purgeTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := app.users.PurgeExpiredTokens(ctx); err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Main is the server entry point.
func Main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, "info")

	app, err := NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		logger.Error(context.Background(), "server error", "error", err)
		os.Exit(1)
	}
}
