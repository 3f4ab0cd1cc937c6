package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bynderpress/internal/common"
	"github.com/dmitrijs2005/bynderpress/internal/server/services"
)

const pageSlug = "bynder"

type optionView struct {
	Value    string
	Selected bool
}

type fieldView struct {
	services.Field
	Value   string
	Select  bool
	Fetched bool
	Options []optionView
}

type sectionView struct {
	Title       string
	Derivatives bool
	Fields      []fieldView
}

type settingsPage struct {
	Sections        []sectionView
	Notices         []services.Notice
	Saved           bool
	CanFetch        bool
	DerivativesHelp string
	FetchDisabled   string
	FetchFirst      string
}

type fetchPage struct {
	OK          bool
	Message     string
	Derivatives []string
}

func newSettingsPage(s *services.Settings, notices []services.Notice, saved bool) settingsPage {
	page := settingsPage{
		Notices:       notices,
		Saved:         saved,
		CanFetch:      s.CanFetchDerivatives(),
		FetchDisabled: services.MsgFetchDisabled,
		FetchFirst:    services.MsgFetchFirst,
	}

	index := map[string]int{}
	for _, f := range services.SettingsFields {
		i, ok := index[f.Section]
		if !ok {
			i = len(page.Sections)
			index[f.Section] = i
			page.Sections = append(page.Sections, sectionView{
				Title:       f.Section,
				Derivatives: f.Section == services.SectionDerivatives,
			})
		}

		v := fieldView{Field: f, Value: s.Value(f.Name), Select: f.Kind == services.FieldSelect}
		if v.Select {
			page.DerivativesHelp = f.Description
			v.Fetched = s.DerivativesFetched()
			for _, o := range s.DerivativeOptions() {
				v.Options = append(v.Options, optionView{Value: o, Selected: o == v.Value})
			}
		}
		page.Sections[i].Fields = append(page.Sections[i].Fields, v)
	}
	return page
}

// optionsPage serves GET /admin/options?page=bynder, and the derivative
// fetch when action=fetchDerivatives.
func (s *Server) optionsPage(c echo.Context) error {
	if c.QueryParam("page") != pageSlug {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	if c.QueryParam("action") == "fetchDerivatives" {
		return s.fetchDerivatives(c)
	}

	settings, err := s.settings.Load(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.Render(http.StatusOK, "settings", newSettingsPage(settings, nil, false))
}

func (s *Server) fetchDerivatives(c echo.Context) error {
	derivatives, err := s.settings.FetchDerivatives(c.Request().Context())
	switch {
	case err == nil:
		return c.Render(http.StatusOK, "fetch", fetchPage{OK: true, Message: services.MsgFetchSucceeded, Derivatives: derivatives})
	case errors.Is(err, common.ErrNotConfigured):
		return c.Render(http.StatusOK, "fetch", fetchPage{Message: services.MsgNotConfigured})
	case errors.Is(err, common.ErrFetchFailed):
		return c.Render(http.StatusOK, "fetch", fetchPage{Message: services.MsgFetchFailed})
	default:
		return mapError(err)
	}
}

// saveOptions serves POST /admin/options. Only submitted fields change.
func (s *Server) saveOptions(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var u services.SettingsUpdate
	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"domain", &u.Domain},
		{"permanent_token", &u.PermanentToken},
		{"default_search_term", &u.DefaultSearchTerm},
		{"image_derivative", &u.ImageDerivative},
	} {
		if vals, ok := form[f.name]; ok && len(vals) > 0 {
			v := vals[0]
			*f.dst = &v
		}
	}

	settings, notices, err := s.settings.Save(c.Request().Context(), u)
	if err != nil {
		return mapError(err)
	}
	return c.Render(http.StatusOK, "settings", newSettingsPage(settings, notices, true))
}
