// Package render turns reports into HTML pages using embedded templates.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// ErrorPrefix starts the message shown when the sheet cannot be turned into a
// report.
const ErrorPrefix = "โหลดข้อมูลจาก Google Sheets ไม่สำเร็จ: "

// Page is the data bound to the dashboard template.
type Page struct {
	Report domain.Report

	// PlanHTML is the static plan document; empty when PlanWarning is set.
	PlanHTML    string
	PlanHeight  int
	PlanWarning string

	// ExportURL links to the workbook of the current view.
	ExportURL string
}

type errorPage struct {
	Message string
}

// Renderer executes the dashboard and error templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pct": barWidth,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Dashboard writes the three-tab dashboard for page.
func (r *Renderer) Dashboard(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard.html.tmpl", page)
}

// Error writes the error page for err. The page carries a single message and
// no tables or charts.
func (r *Renderer) Error(w io.Writer, err error) error {
	return r.tmpl.ExecuteTemplate(w, "error.html.tmpl", errorPage{Message: ErrorPrefix + err.Error()})
}

// barWidth returns count as a percentage of largest, formatted for a CSS width.
func barWidth(count, largest int) string {
	if largest <= 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(count)*100/float64(largest), 'f', 1, 64)
}
