package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bynderpress/internal/blocks"
	"github.com/dmitrijs2005/bynderpress/internal/common"
)

// mapError converts a service error into an echo.HTTPError.
func mapError(err error) *echo.HTTPError {
	var w *blocks.Warning
	if errors.As(err, &w) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, w.Message)
	}

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")

	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrMalformedMarkup),
		errors.Is(err, common.ErrNotBynderGallery),
		errors.Is(err, common.ErrNoAssetSelected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, common.ErrorUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

	case errors.Is(err, common.ErrNotConfigured):
		return echo.NewHTTPError(http.StatusPreconditionFailed, "Domain or permanent token not configured!")

	case errors.Is(err, common.ErrFetchFailed),
		errors.Is(err, common.ErrSyncFailed):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
