package models

import "time"

type PostType string

const (
	PostTypePost PostType = "post"
	PostTypePage PostType = "page"
)

type PostStatus string

const (
	StatusPublish   PostStatus = "publish"
	StatusFuture    PostStatus = "future"
	StatusDraft     PostStatus = "draft"
	StatusPending   PostStatus = "pending"
	StatusPrivate   PostStatus = "private"
	StatusTrash     PostStatus = "trash"
	StatusAutoDraft PostStatus = "auto-draft"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case StatusPublish, StatusFuture, StatusDraft, StatusPending, StatusPrivate, StatusTrash, StatusAutoDraft:
		return true
	}
	return false
}

func (t PostType) Valid() bool {
	return t == PostTypePost || t == PostTypePage
}

// Post is a post or page of the content store. GUID is assigned on insert
// and never changes afterwards.
type Post struct {
	ID        int64
	Type      PostType
	Status    PostStatus
	Title     string
	Content   string
	GUID      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
