// Package view renders the embedded HTML templates. Rendering is plumbing
// around the core: templates stay minimal and carry no logic beyond loops
// and conditionals.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/flash"
	"github.com/taskdo/taskdo-server/internal/model"
)

//go:embed templates/*.html
var files embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page template.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// Page carries fields shared by every view.
type Page struct {
	Notice   *flash.Notice
	SignedIn bool
}

// IndexData feeds the home page.
type IndexData struct {
	Page
	AllTasks  []model.Task
	UserTasks []model.Task
}

// DateSelectorData feeds the date selector page.
type DateSelectorData struct {
	Page
	Submitted    bool
	SelectedDate string
	Matching     []model.Task
	AllTasks     []model.Task
}

// TaskFormData feeds the shared new/edit task form.
type TaskFormData struct {
	Page
	Title  string
	Action string
	Name   string
}

// AuthFormData feeds the register and login forms.
type AuthFormData struct {
	Page
	Title    string
	Action   string
	WithName bool
}

// ConfirmData feeds the delete confirmation page.
type ConfirmData struct {
	Page
	Task model.Task
}
