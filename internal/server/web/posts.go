package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bynderpress/internal/server/models"
	"github.com/dmitrijs2005/bynderpress/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

type postView struct {
	ID        int64             `json:"id"`
	Type      models.PostType   `json:"type"`
	Status    models.PostStatus `json:"status"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	GUID      string            `json:"guid"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func toView(p *models.Post) postView {
	return postView{
		ID:        p.ID,
		Type:      p.Type,
		Status:    p.Status,
		Title:     p.Title,
		Content:   p.Content,
		GUID:      p.GUID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	return id, nil
}

// listPosts serves GET /api/posts?type=&status=&limit=&offset=.
func (s *Server) listPosts(c echo.Context) error {
	var f posts.Filter
	if v := c.QueryParam("type"); v != "" {
		f.Types = []models.PostType{models.PostType(v)}
	}
	if v := c.QueryParam("status"); v != "" {
		f.Statuses = []models.PostStatus{models.PostStatus(v)}
	}
	for name, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		if v := c.QueryParam(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
			}
			*dst = n
		}
	}

	list, err := s.content.List(c.Request().Context(), f)
	if err != nil {
		return mapError(err)
	}
	out := make([]postView, 0, len(list))
	for _, p := range list {
		out = append(out, toView(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createPost(c echo.Context) error {
	var in services.PostInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	p, err := s.content.Create(c.Request().Context(), in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, toView(p))
}

func (s *Server) getPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	p, err := s.content.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, toView(p))
}

func (s *Server) updatePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	var u services.PostUpdate
	if err := c.Bind(&u); err != nil {
		return err
	}
	p, err := s.content.Update(c.Request().Context(), id, u)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, toView(p))
}

// deletePost moves the post to the trash; ?force=true deletes it for good.
func (s *Server) deletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if force, _ := strconv.ParseBool(c.QueryParam("force")); force {
		if err := s.content.Delete(c.Request().Context(), id); err != nil {
			return mapError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	p, err := s.content.Trash(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, toView(p))
}
