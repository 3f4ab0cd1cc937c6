package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	t *template.Template
}

func newRenderer() *templateRenderer {
	return &templateRenderer{t: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (r *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
