// Package web is the admin HTTP surface: the settings page, the editor and
// content JSON APIs, metrics and health.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/bynderpress/internal/blocks"
	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

type SettingsManager interface {
	Load(ctx context.Context) (*services.Settings, error)
	Save(ctx context.Context, u services.SettingsUpdate) (*services.Settings, []services.Notice, error)
	FetchDerivatives(ctx context.Context) ([]string, error)
}

type Editor interface {
	Config(ctx context.Context) (blocks.EditorConfig, error)
	AssetBlock(ctx context.Context, assets []blocks.Asset) (*services.BlockResult, error)
	GalleryBlock(ctx context.Context, assets []blocks.Asset) (*services.BlockResult, error)
	AppendToGallery(ctx context.Context, markup string, assets []blocks.Asset) (*services.BlockResult, error)
	Parse(markup string) (*blocks.Block, error)
}

type Content interface {
	Create(ctx context.Context, in services.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, u services.PostUpdate) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, f posts.Filter) ([]*models.Post, error)
	Trash(ctx context.Context, id int64) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type Server struct {
	address  string
	settings SettingsManager
	editor   Editor
	content  Content
	users    Authenticator
	logger   logging.Logger
	echo     *echo.Echo
}

func NewServer(address string, l logging.Logger, settings SettingsManager, editor Editor, content Content, users Authenticator) *Server {
	s := &Server{
		address:  address,
		settings: settings,
		editor:   editor,
		content:  content,
		users:    users,
		logger:   l.With("module", "http_server"),
	}
	s.echo = s.routes()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newRenderer()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.BasicAuth(s.checkCredentials)

	admin := e.Group("/admin", auth)
	admin.GET("/options", s.optionsPage)
	admin.POST("/options", s.saveOptions)

	editor := e.Group("/api/editor", auth)
	editor.GET("/config", s.editorConfig)
	editor.POST("/asset-block", s.assetBlock)
	editor.POST("/gallery-block", s.galleryBlock)
	editor.POST("/gallery-block/append", s.appendToGallery)
	editor.POST("/parse", s.parseBlock)

	content := e.Group("/api/posts", auth)
	content.GET("", s.listPosts)
	content.POST("", s.createPost)
	content.GET("/:id", s.getPost)
	content.PUT("/:id", s.updatePost)
	content.DELETE("/:id", s.deletePost)

	return e
}

func (s *Server) checkCredentials(username, password string, c echo.Context) (bool, error) {
	_, err := s.users.Authenticate(c.Request().Context(), username, password)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrorUnauthorized) {
		s.logger.Warn(c.Request().Context(), "admin login rejected", "username", username)
		return false, nil
	}
	return false, err
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.echo.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
