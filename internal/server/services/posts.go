package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/dbx"
	"github.com/dmitrijs2005/bynderpress/internal/logging"
	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/repomanager"
)

// PostInput creates a post or page. Empty Type means post, empty Status draft.
type PostInput struct {
	Type    models.PostType   `json:"type"`
	Status  models.PostStatus `json:"status"`
	Title   string            `json:"title"`
	Content string            `json:"content"`
}

// PostUpdate changes an existing post. Nil fields are kept.
type PostUpdate struct {
	Status  *models.PostStatus `json:"status,omitempty"`
	Title   *string            `json:"title,omitempty"`
	Content *string            `json:"content,omitempty"`
}

// PostService is the content store the usage sync scans.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	siteURL     string
	log         logging.Logger
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, siteURL string, log logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		siteURL:     strings.TrimRight(siteURL, "/"),
		log:         log.With("module", "content"),
	}
}

// GUID builds the permanent identifier of a post: {site}/?p={id} for posts
// and {site}/?page_id={id} for pages.
func GUID(siteURL string, t models.PostType, id int64) string {
	siteURL = strings.TrimRight(siteURL, "/")
	if t == models.PostTypePage {
		return fmt.Sprintf("%s/?page_id=%d", siteURL, id)
	}
	return fmt.Sprintf("%s/?p=%d", siteURL, id)
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	p := &models.Post{Type: in.Type, Status: in.Status, Title: in.Title, Content: in.Content}
	if p.Type == "" {
		p.Type = models.PostTypePost
	}
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown post type %q", common.ErrorValidation, p.Type)
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown post status %q", common.ErrorValidation, p.Status)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if _, err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		p.GUID = GUID(s.siteURL, p.Type, p.ID)
		if err := repo.SetGUID(ctx, p.ID, p.GUID); err != nil {
			return fmt.Errorf("error setting guid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "post created", "id", p.ID, "type", p.Type)
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id int64, u PostUpdate) (*models.Post, error) {
	if u.Status != nil && !u.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown post status %q", common.ErrorValidation, *u.Status)
	}

	var out *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		p, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u.Status != nil {
			p.Status = *u.Status
		}
		if u.Title != nil {
			p.Title = *u.Title
		}
		if u.Content != nil {
			p.Content = *u.Content
		}
		out, err = repo.Update(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.repomanager.Posts(s.db).Get(ctx, id)
}

func (s *PostService) List(ctx context.Context, f posts.Filter) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx, f)
}

// Trash moves a post to the trash. Trashed posts are still reported by the
// usage sync.
func (s *PostService) Trash(ctx context.Context, id int64) (*models.Post, error) {
	status := models.StatusTrash
	return s.Update(ctx, id, PostUpdate{Status: &status})
}

// Delete removes a post permanently.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Posts(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "post deleted", "id", id)
	return nil
}

// UsageCandidates returns every post and page the usage sync scans: all
// statuses, trash included, except auto-drafts.
func (s *PostService) UsageCandidates(ctx context.Context) ([]*models.Post, error) {
	return s.List(ctx, posts.Filter{
		Types:           []models.PostType{models.PostTypePost, models.PostTypePage},
		ExcludeStatuses: []models.PostStatus{models.StatusAutoDraft},
	})
}
