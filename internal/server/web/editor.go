package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bynderpress/internal/blocks"
)

type pickRequest struct {
	Assets []blocks.Asset `json:"assets"`
}

type appendRequest struct {
	Markup string         `json:"markup"`
	Assets []blocks.Asset `json:"assets"`
}

type parseRequest struct {
	Markup string `json:"markup"`
}

func (s *Server) editorConfig(c echo.Context) error {
	cfg, err := s.editor.Config(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (s *Server) assetBlock(c echo.Context) error {
	var req pickRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.editor.AssetBlock(c.Request().Context(), req.Assets)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) galleryBlock(c echo.Context) error {
	var req pickRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.editor.GalleryBlock(c.Request().Context(), req.Assets)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) appendToGallery(c echo.Context) error {
	var req appendRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	res, err := s.editor.AppendToGallery(c.Request().Context(), req.Markup, req.Assets)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) parseBlock(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	b, err := s.editor.Parse(req.Markup)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, b)
}
