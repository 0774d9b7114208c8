// Package views renders the portal's pages from embedded html/template files.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"bikinibottom/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *models.PublicUser // logged-in visitor, nil for guests
	Success string
	Error   string
	Profile *models.PublicUser
}

// Engine implements fiber.Views.
type Engine struct {
	templates *template.Template
}

// New returns an Engine; fiber calls Load when the app starts.
func New() *Engine {
	return &Engine{}
}

// Load parses every embedded template.
func (e *Engine) Load() error {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	e.templates = t
	return nil
}

// Render executes the named page. Layouts are part of each page, so the
// layout argument is ignored.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	if e.templates == nil {
		if err := e.Load(); err != nil {
			return err
		}
	}
	return e.templates.ExecuteTemplate(w, name, binding)
}
