// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/handler"
	"github.com/taskdo/taskdo-server/internal/api/web/middleware"
)

// Config carries the handlers and middleware the router assembles.
type Config struct {
	Auth         *handler.Auth
	Tasks        *handler.Tasks
	Authenticate *middleware.Authenticate
	Guard        *middleware.RequireUser
	Logging      *middleware.Logging
}

// New builds the route table. Session resolution and request logging wrap
// every route; the sign-in guard wraps only the task creation and edit
// routes. Delete and its confirmation page stay open to any caller, matching
// the access rules of the forms themselves.
func New(cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", cfg.Tasks.Home)

	mux.HandleFunc("GET /register", cfg.Auth.ShowRegister)
	mux.HandleFunc("POST /register", cfg.Auth.Register)
	mux.HandleFunc("GET /login", cfg.Auth.ShowLogin)
	mux.HandleFunc("POST /login", cfg.Auth.Login)
	mux.HandleFunc("GET /logout", cfg.Auth.Logout)

	mux.HandleFunc("GET /date_selector", cfg.Tasks.ShowDateSelector)
	mux.HandleFunc("POST /date_selector", cfg.Tasks.SelectDate)

	mux.Handle("GET /new-post", cfg.Guard.Handle(http.HandlerFunc(cfg.Tasks.ShowCreate)))
	mux.Handle("POST /new-post", cfg.Guard.Handle(http.HandlerFunc(cfg.Tasks.Create)))
	mux.Handle("GET /edit-task/{id}", cfg.Guard.Handle(http.HandlerFunc(cfg.Tasks.ShowEdit)))
	mux.Handle("POST /edit-task/{id}", cfg.Guard.Handle(http.HandlerFunc(cfg.Tasks.Edit)))

	mux.HandleFunc("GET /confirmation/{id}", cfg.Tasks.Confirm)
	mux.HandleFunc("GET /delete/{id}", cfg.Tasks.Delete)

	return cfg.Logging.Handle(cfg.Authenticate.Handle(mux))
}
