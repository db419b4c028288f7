package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/taskdo/taskdo-server/internal/api/web/handler"
	"github.com/taskdo/taskdo-server/internal/api/web/middleware"
	"github.com/taskdo/taskdo-server/internal/dates"
	"github.com/taskdo/taskdo-server/internal/mocks"
	"github.com/taskdo/taskdo-server/internal/model"
	"github.com/taskdo/taskdo-server/internal/requestctx"
	"github.com/taskdo/taskdo-server/internal/testutil"
)

func newTaskHandler(t *testing.T, tasks handler.TaskService) (*handler.Tasks, *requestctx.Manager) {
	t.Helper()
	cm := requestctx.NewManager()
	return handler.NewTasks(tasks, cm, newViews(t), testutil.MakeNoopLogger()), cm
}

func signIn(r *http.Request, cm *requestctx.Manager, userID uuid.UUID) *http.Request {
	return r.WithContext(cm.SetUserIDToContext(r.Context(), userID))
}

func TestTasks_Home_Anonymous(t *testing.T) {
	t.Parallel()

	taskService := mocks.NewTaskService(t)
	taskService.On("List", mock.Anything).
		Return([]model.Task{
			{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024"},
		}, nil)

	h, _ := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "walk the dog")
	assert.NotContains(t, rec.Body.String(), "Your tasks")
}

func TestTasks_Home_SignedIn(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("List", mock.Anything).
		Return([]model.Task{
			{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024"},
			{ID: uuid.New(), Name: "water plants", Date: "June 16, 2024", OwnerID: userID},
		}, nil)
	taskService.On("ListByOwner", mock.Anything, userID).
		Return([]model.Task{
			{ID: uuid.New(), Name: "water plants", Date: "June 16, 2024", OwnerID: userID},
		}, nil)

	h, cm := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.Home(rec, signIn(httptest.NewRequest(http.MethodGet, "/", nil), cm, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your tasks")
	assert.Contains(t, rec.Body.String(), "water plants")
}

func TestTasks_SelectDate_Anonymous(t *testing.T) {
	t.Parallel()

	h, _ := newTaskHandler(t, mocks.NewTaskService(t))

	rec := httptest.NewRecorder()
	h.SelectDate(rec, postForm("/date_selector", url.Values{"date": {"2024-06-15"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/date_selector", rec.Header().Get("Location"))
	assert.Equal(t, middleware.SignInFirstMessage, flashedNotice(t, rec).Message)
}

func TestTasks_SelectDate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("ListByOwnerOnDate", mock.Anything, userID, "2024-06-15").
		Return([]model.Task{
			{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024", OwnerID: userID},
		}, "June 15, 2024", nil)
	taskService.On("List", mock.Anything).
		Return([]model.Task{
			{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024", OwnerID: userID},
		}, nil)

	h, cm := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.SelectDate(rec, signIn(postForm("/date_selector", url.Values{"date": {"2024-06-15"}}), cm, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your tasks on June 15, 2024")
	assert.Contains(t, rec.Body.String(), "walk the dog")
}

func TestTasks_SelectDate_Malformed(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("ListByOwnerOnDate", mock.Anything, userID, "junk").
		Return(nil, "", fmt.Errorf("failed to normalize date: %w", dates.ErrMalformed))

	h, cm := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.SelectDate(rec, signIn(postForm("/date_selector", url.Values{"date": {"junk"}}), cm, userID))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/date_selector", rec.Header().Get("Location"))
	assert.Equal(t, "Invalid date.", flashedNotice(t, rec).Message)
}

func TestTasks_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Create", mock.Anything, model.CreateTaskParams{
		Name:    "walk the dog",
		Date:    "June 15, 2024",
		OwnerID: userID,
	}).Return(model.Task{ID: uuid.New()}, nil)

	h, cm := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.Create(rec, signIn(postForm("/new-post", url.Values{
		"name": {"walk the dog"},
		"date": {"2024-06-15"},
	}), cm, userID))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestTasks_Create_NameTaken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Create", mock.Anything, mock.Anything).
		Return(model.Task{}, model.ErrTaskNameTaken)

	h, cm := newTaskHandler(t, taskService)

	rec := httptest.NewRecorder()
	h.Create(rec, signIn(postForm("/new-post", url.Values{
		"name": {"walk the dog"},
		"date": {"2024-06-15"},
	}), cm, userID))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/new-post", rec.Header().Get("Location"))
	assert.Equal(t, "Name already exist in the database! Please rename.", flashedNotice(t, rec).Message)
}

func TestTasks_Create_MalformedDate(t *testing.T) {
	t.Parallel()

	h, cm := newTaskHandler(t, mocks.NewTaskService(t))

	rec := httptest.NewRecorder()
	h.Create(rec, signIn(postForm("/new-post", url.Values{
		"name": {"walk the dog"},
		"date": {"junk"},
	}), cm, uuid.New()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/new-post", rec.Header().Get("Location"))
	assert.Equal(t, "Invalid date.", flashedNotice(t, rec).Message)
}

func TestTasks_ShowEdit(t *testing.T) {
	t.Parallel()

	task := model.Task{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024"}

	taskService := mocks.NewTaskService(t)
	taskService.On("Get", mock.Anything, task.ID).Return(task, nil)

	h, cm := newTaskHandler(t, taskService)

	req := signIn(httptest.NewRequest(http.MethodGet, "/edit-task/"+task.ID.String(), nil), cm, uuid.New())
	req.SetPathValue("id", task.ID.String())

	rec := httptest.NewRecorder()
	h.ShowEdit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="walk the dog"`)
	assert.Contains(t, rec.Body.String(), "/edit-task/"+task.ID.String())
}

func TestTasks_Edit(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Update", mock.Anything, taskID, "feed the cat", "January 5, 2024").
		Return(model.Task{ID: taskID, Name: "feed the cat", Date: "January 5, 2024"}, nil)

	h, cm := newTaskHandler(t, taskService)

	req := signIn(postForm("/edit-task/"+taskID.String(), url.Values{
		"name": {"feed the cat"},
		"date": {"2024-01-05"},
	}), cm, uuid.New())
	req.SetPathValue("id", taskID.String())

	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestTasks_Edit_NotFound(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Update", mock.Anything, taskID, "feed the cat", "January 5, 2024").
		Return(model.Task{}, model.ErrNotFound)

	h, cm := newTaskHandler(t, taskService)

	req := signIn(postForm("/edit-task/"+taskID.String(), url.Values{
		"name": {"feed the cat"},
		"date": {"2024-01-05"},
	}), cm, uuid.New())
	req.SetPathValue("id", taskID.String())

	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Task not found.", flashedNotice(t, rec).Message)
}

func TestTasks_Confirm(t *testing.T) {
	t.Parallel()

	task := model.Task{ID: uuid.New(), Name: "walk the dog", Date: "June 15, 2024"}

	taskService := mocks.NewTaskService(t)
	taskService.On("Get", mock.Anything, task.ID).Return(task, nil)

	h, _ := newTaskHandler(t, taskService)

	req := httptest.NewRequest(http.MethodGet, "/confirmation/"+task.ID.String(), nil)
	req.SetPathValue("id", task.ID.String())

	rec := httptest.NewRecorder()
	h.Confirm(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "walk the dog")
	assert.Contains(t, rec.Body.String(), "/delete/"+task.ID.String())
}

func TestTasks_Delete(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Delete", mock.Anything, taskID).Return(nil)

	h, _ := newTaskHandler(t, taskService)

	req := httptest.NewRequest(http.MethodGet, "/delete/"+taskID.String(), nil)
	req.SetPathValue("id", taskID.String())

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestTasks_Delete_NotFound(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()

	taskService := mocks.NewTaskService(t)
	taskService.On("Delete", mock.Anything, taskID).Return(model.ErrNotFound)

	h, _ := newTaskHandler(t, taskService)

	req := httptest.NewRequest(http.MethodGet, "/delete/"+taskID.String(), nil)
	req.SetPathValue("id", taskID.String())

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Task not found.", flashedNotice(t, rec).Message)
}

func TestTasks_Delete_BadID(t *testing.T) {
	t.Parallel()

	h, _ := newTaskHandler(t, mocks.NewTaskService(t))

	req := httptest.NewRequest(http.MethodGet, "/delete/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Task not found.", flashedNotice(t, rec).Message)
}
