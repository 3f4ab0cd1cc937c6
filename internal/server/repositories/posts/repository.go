// Package posts stores the posts and pages of the content store.
package posts

import (
	"context"

	"github.com/dmitrijs2005/bynderpress/internal/server/models"
)

// Filter narrows List. Empty slices mean "any".
type Filter struct {
	Types           []models.PostType
	Statuses        []models.PostStatus
	ExcludeStatuses []models.PostStatus
	Limit           int
	Offset          int
}

type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	SetGUID(ctx context.Context, id int64, guid string) error
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, f Filter) ([]*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
