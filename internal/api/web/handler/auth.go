package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/flash"
	"github.com/taskdo/taskdo-server/internal/api/web/session"
	"github.com/taskdo/taskdo-server/internal/api/web/view"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// AuthService registers new users and verifies credentials.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
}

// Auth serves the register, login and logout pages.
type Auth struct {
	auth           AuthService
	sessions       *session.Manager
	contextManager model.ContextManager
	views          *view.Renderer
	logger         *logger.Logger
}

func NewAuth(
	auth AuthService,
	sessions *session.Manager,
	contextManager model.ContextManager,
	views *view.Renderer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		auth:           auth,
		sessions:       sessions,
		contextManager: contextManager,
		views:          views,
		logger:         logger,
	}
}

// ShowRegister renders the registration form.
func (h *Auth) ShowRegister(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, h.views, "auth_form", view.AuthFormData{
		Page:     page(w, r, h.contextManager),
		Title:    "Register",
		Action:   "/register",
		WithName: true,
	})
}

// Register creates an account from the submitted form and signs the
// new user in.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		serverError(w, r, h.logger, err, "/register")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	name := r.PostFormValue("name")

	user, err := h.auth.Register(r.Context(), email, password, name)
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		flashRedirect(w, r, "/login", flash.Warning(msgRegisteredAlready))
		return
	case errors.Is(err, model.ErrInvalidEmail):
		flashRedirect(w, r, "/register", flash.Warning(msgInvalidEmail))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/register")
		return
	}

	if err := h.sessions.Establish(w, user.ID); err != nil {
		serverError(w, r, h.logger, err, "/register")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowLogin renders the login form.
func (h *Auth) ShowLogin(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, h.views, "auth_form", view.AuthFormData{
		Page:   page(w, r, h.contextManager),
		Title:  "Login",
		Action: "/login",
	})
}

// Login verifies the submitted credentials and starts a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		serverError(w, r, h.logger, err, "/login")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, model.ErrNotFound):
		flashRedirect(w, r, "/login", flash.Warning(msgWrongEmail))
		return
	case errors.Is(err, model.ErrWrongPassword):
		flashRedirect(w, r, "/login", flash.Warning(msgWrongPassword))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/login")
		return
	}

	if err := h.sessions.Establish(w, user.ID); err != nil {
		serverError(w, r, h.logger, err, "/login")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the session cookie and returns to the home page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
