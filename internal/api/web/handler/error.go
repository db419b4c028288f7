package handler

import (
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/flash"
	"github.com/taskdo/taskdo-server/internal/api/web/view"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// User-visible messages. Every failure is recovered into one of these plus a
// redirect; a raw fault never reaches the caller.
const (
	msgRegisteredAlready = "It looks like you've registered already, please login instead!"
	msgInvalidEmail      = "Invalid email address!"
	msgWrongEmail        = "Incorrect email address, please try again."
	msgWrongPassword     = "Incorrect password, please try again."
	msgTaskNameTaken     = "Name already exist in the database! Please rename."
	msgTaskNotFound      = "Task not found."
	msgInvalidDate       = "Invalid date."
	msgServerError       = "Something went wrong, please try again."
)

// flashRedirect flashes notice and redirects to target.
func flashRedirect(w http.ResponseWriter, r *http.Request, target string, notice flash.Notice) {
	flash.Write(w, notice)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// serverError recovers an unexpected failure into a flash and a redirect.
func serverError(w http.ResponseWriter, r *http.Request, lg *logger.Logger, err error, target string) {
	lg.Error("handler: unexpected error",
		"path", r.URL.Path,
		"error", err.Error())
	flashRedirect(w, r, target, flash.Error(msgServerError))
}

// render executes a view and logs a failed execution. Headers are already
// written by then, so there is nothing more to send the caller.
func render(w http.ResponseWriter, r *http.Request, lg *logger.Logger, views *view.Renderer, name string, data any) {
	if err := views.Render(w, name, data); err != nil {
		lg.Error("handler: failed to render view",
			"view", name,
			"path", r.URL.Path,
			"error", err.Error())
	}
}

// page assembles the fields shared by every rendered view: the pending
// flash notice, if any, and whether the caller is signed in.
func page(w http.ResponseWriter, r *http.Request, cm model.ContextManager) view.Page {
	p := view.Page{}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		p.Notice = &notice
	}
	_, p.SignedIn = cm.GetUserIDFromContext(r.Context())
	return p
}
