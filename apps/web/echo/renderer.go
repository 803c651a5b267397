package echoweb

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/grade"
)

const (
	pageTemplate  = "page.gohtml"
	errorTemplate = "error.gohtml"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer(appName string) *renderer {
	funcs := template.FuncMap{
		"appName": func() string { return appName },
	}
	return &renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.gohtml")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type (
	pageData struct {
		console.View
		Grades   []grade.Grade
		Statuses []attendance.Status
	}

	errorData struct {
		Code    int
		Title   string
		Message string
	}
)

func newPageData(v console.View) pageData {
	return pageData{
		View:     v,
		Grades:   grade.Grades,
		Statuses: attendance.Statuses,
	}
}
