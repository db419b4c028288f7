package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskdo/taskdo-server/internal/api/web/handler"
	"github.com/taskdo/taskdo-server/internal/api/web/middleware"
	"github.com/taskdo/taskdo-server/internal/api/web/router"
	"github.com/taskdo/taskdo-server/internal/api/web/session"
	"github.com/taskdo/taskdo-server/internal/api/web/view"
	"github.com/taskdo/taskdo-server/internal/mocks"
	"github.com/taskdo/taskdo-server/internal/model"
	"github.com/taskdo/taskdo-server/internal/requestctx"
	"github.com/taskdo/taskdo-server/internal/testutil"
	"github.com/taskdo/taskdo-server/internal/token"
)

const testSecret = "test-secret"

func newRouter(t *testing.T, authService handler.AuthService, taskService handler.TaskService, userStore model.UserStore) http.Handler {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	cm := requestctx.NewManager()
	sessions := session.NewManager(token.NewJWT(testSecret))

	views, err := view.NewRenderer()
	require.NoError(t, err)

	return router.New(router.Config{
		Auth:         handler.NewAuth(authService, sessions, cm, views, lg),
		Tasks:        handler.NewTasks(taskService, cm, views, lg),
		Authenticate: middleware.NewAuthenticate(sessions, userStore, cm, lg),
		Guard:        middleware.NewRequireUser(cm, lg),
		Logging:      middleware.NewLogging(lg),
	})
}

func sessionRequest(t *testing.T, method, target string, userID uuid.UUID) *http.Request {
	t.Helper()

	value, err := token.NewJWT(testSecret).GenerateSessionToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	return req
}

func TestRouter_HomeAnonymous(t *testing.T) {
	t.Parallel()

	taskService := mocks.NewTaskService(t)
	taskService.On("List", mock.Anything).
		Return([]model.Task{{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024"}}, nil)

	h := newRouter(t, &mocks.AuthService{}, taskService, &mocks.UserStore{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "walk the dog")
}

func TestRouter_GuardedRouteAnonymous(t *testing.T) {
	t.Parallel()

	h := newRouter(t, &mocks.AuthService{}, &mocks.TaskService{}, &mocks.UserStore{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/new-post", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_GuardedRouteWithSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	userStore := mocks.NewUserStore(t)
	userStore.On("GetByID", mock.Anything, userID).
		Return(model.User{ID: userID, Email: "a@b.c"}, nil)

	h := newRouter(t, &mocks.AuthService{}, &mocks.TaskService{}, userStore)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, sessionRequest(t, http.MethodGet, "/new-post", userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/new-post"`)
}

func TestRouter_SessionOfDeletedUserIsAnonymous(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	userStore := mocks.NewUserStore(t)
	userStore.On("GetByID", mock.Anything, userID).
		Return(model.User{}, model.ErrNotFound)

	h := newRouter(t, &mocks.AuthService{}, &mocks.TaskService{}, userStore)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, sessionRequest(t, http.MethodGet, "/new-post", userID))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_DeleteIsUnguarded(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Delete", mock.Anything, taskID).Return(nil)

	h := newRouter(t, &mocks.AuthService{}, taskService, &mocks.UserStore{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/delete/"+taskID.String(), nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newRouter(t, &mocks.AuthService{}, &mocks.TaskService{}, &mocks.UserStore{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
