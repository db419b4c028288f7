package middleware

import (
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/flash"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// SignInFirstMessage is shown when an anonymous caller hits a guarded route.
const SignInFirstMessage = "Please sign in or sign up first!"

// RequireUser guards routes that need an authenticated user. An anonymous
// caller is flashed a warning and redirected home instead of reaching the
// wrapped handler. The check is only "is someone signed in": it never asks
// whether the caller owns the resource it is about to touch.
type RequireUser struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRequireUser creates a new RequireUser middleware instance.
func NewRequireUser(contextManager model.ContextManager, logger *logger.Logger) *RequireUser {
	return &RequireUser{
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps next with the authentication gate.
func (m *RequireUser) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.contextManager.GetUserIDFromContext(r.Context()); !ok {
			m.logger.Info("RequireUser middleware: anonymous caller blocked",
				"path", r.URL.Path)
			flash.Write(w, flash.Warning(SignInFirstMessage))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
