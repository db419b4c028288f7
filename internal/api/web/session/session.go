// Package session binds a browser to a user through a signed cookie.
// The cookie value is a signed token carrying the user ID; nothing is kept
// server-side, so a session survives restarts as long as the signing secret
// is stable. Sessions end only at explicit logout.
package session

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskdo/taskdo-server/internal/model"
)

// CookieName is the session cookie.
const CookieName = "taskdo_session"

// Manager reads and writes the session cookie.
type Manager struct {
	tokens model.TokenManager
}

// NewManager creates a session manager signing with the given token manager.
func NewManager(tokens model.TokenManager) *Manager {
	return &Manager{tokens: tokens}
}

// Establish signs a session token for the user and sets the cookie.
func (m *Manager) Establish(w http.ResponseWriter, userID uuid.UUID) error {
	token, err := m.tokens.GenerateSessionToken(userID)
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Resolve extracts the user ID bound to the request's session cookie.
// A missing, malformed or badly signed cookie yields an anonymous result,
// never an error.
func (m *Manager) Resolve(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}

	userID, err := m.tokens.ParseSessionToken(cookie.Value)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, false
	}

	return userID, true
}
