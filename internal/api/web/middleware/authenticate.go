package middleware

import (
	"net/http"

	"github.com/taskdo/taskdo-server/internal/api/web/session"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// Authenticate resolves the session cookie into a user ID on the request
// context. It never rejects a request: an unresolvable session simply leaves
// the request anonymous. If the bound identifier no longer resolves to a
// stored user the request is anonymous as well.
type Authenticate struct {
	sessions       *session.Manager
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions *session.Manager, userStore model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		userStore:      userStore,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps next with session resolution.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.sessions.Resolve(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := m.userStore.GetByID(r.Context(), userID); err != nil {
			m.logger.Debug("Authenticate middleware: session user not found",
				"user_id", userID,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
