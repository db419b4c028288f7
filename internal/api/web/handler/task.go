package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskdo/taskdo-server/internal/api/web/flash"
	"github.com/taskdo/taskdo-server/internal/api/web/middleware"
	"github.com/taskdo/taskdo-server/internal/api/web/view"
	"github.com/taskdo/taskdo-server/internal/dates"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// TaskService provides task CRUD and the date lookup.
type TaskService interface {
	Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	ListByOwnerOnDate(ctx context.Context, ownerID uuid.UUID, selected string) ([]model.Task, string, error)
	Get(ctx context.Context, id uuid.UUID) (model.Task, error)
	Update(ctx context.Context, id uuid.UUID, name, date string) (model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Tasks serves the home page, the date selector and the task CRUD pages.
type Tasks struct {
	tasks          TaskService
	contextManager model.ContextManager
	views          *view.Renderer
	logger         *logger.Logger
}

func NewTasks(
	tasks TaskService,
	contextManager model.ContextManager,
	views *view.Renderer,
	logger *logger.Logger,
) *Tasks {
	return &Tasks{
		tasks:          tasks,
		contextManager: contextManager,
		views:          views,
		logger:         logger,
	}
}

// Home renders the full task list plus, for a signed-in caller, their own
// tasks.
func (h *Tasks) Home(w http.ResponseWriter, r *http.Request) {
	all, err := h.tasks.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, err, "/")
		return
	}

	data := view.IndexData{
		Page:     page(w, r, h.contextManager),
		AllTasks: all,
	}

	if userID, ok := h.contextManager.GetUserIDFromContext(r.Context()); ok {
		own, err := h.tasks.ListByOwner(r.Context(), userID)
		if err != nil {
			serverError(w, r, h.logger, err, "/")
			return
		}
		data.UserTasks = own
	}

	render(w, r, h.logger, h.views, "index", data)
}

// ShowDateSelector renders the date selector before any submission.
func (h *Tasks) ShowDateSelector(w http.ResponseWriter, r *http.Request) {
	all, err := h.tasks.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, err, "/")
		return
	}

	render(w, r, h.logger, h.views, "date_selector", view.DateSelectorData{
		Page:     page(w, r, h.contextManager),
		AllTasks: all,
	})
}

// SelectDate filters the caller's tasks down to the submitted date. The
// route itself is open; an anonymous submission is bounced back to the
// selector with the sign-in prompt.
func (h *Tasks) SelectDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		flashRedirect(w, r, "/date_selector", flash.Warning(middleware.SignInFirstMessage))
		return
	}

	if err := r.ParseForm(); err != nil {
		serverError(w, r, h.logger, err, "/date_selector")
		return
	}

	matching, displayDate, err := h.tasks.ListByOwnerOnDate(r.Context(), userID, r.PostFormValue("date"))
	switch {
	case errors.Is(err, dates.ErrMalformed):
		flashRedirect(w, r, "/date_selector", flash.Warning(msgInvalidDate))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/date_selector")
		return
	}

	all, err := h.tasks.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, err, "/date_selector")
		return
	}

	render(w, r, h.logger, h.views, "date_selector", view.DateSelectorData{
		Page:         page(w, r, h.contextManager),
		Submitted:    true,
		SelectedDate: displayDate,
		Matching:     matching,
		AllTasks:     all,
	})
}

// ShowCreate renders the empty task form.
func (h *Tasks) ShowCreate(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, h.views, "task_form", view.TaskFormData{
		Page:   page(w, r, h.contextManager),
		Title:  "New task",
		Action: "/new-post",
	})
}

// Create stores a submitted task under the signed-in caller.
func (h *Tasks) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		flashRedirect(w, r, "/", flash.Warning(middleware.SignInFirstMessage))
		return
	}

	if err := r.ParseForm(); err != nil {
		serverError(w, r, h.logger, err, "/new-post")
		return
	}

	displayDate, err := dates.Display(r.PostFormValue("date"))
	if err != nil {
		flashRedirect(w, r, "/new-post", flash.Warning(msgInvalidDate))
		return
	}

	_, err = h.tasks.Create(r.Context(), model.CreateTaskParams{
		Name:    r.PostFormValue("name"),
		Date:    displayDate,
		OwnerID: userID,
	})
	switch {
	case errors.Is(err, model.ErrTaskNameTaken):
		flashRedirect(w, r, "/new-post", flash.Warning(msgTaskNameTaken))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/new-post")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowEdit renders the task form prefilled with the task's current name.
// Any signed-in user may edit any task.
func (h *Tasks) ShowEdit(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	}

	task, err := h.tasks.Get(r.Context(), taskID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/")
		return
	}

	render(w, r, h.logger, h.views, "task_form", view.TaskFormData{
		Page:   page(w, r, h.contextManager),
		Title:  "Edit task",
		Action: "/edit-task/" + task.ID.String(),
		Name:   task.Name,
	})
}

// Edit overwrites a task's name and date.
func (h *Tasks) Edit(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	}

	if err := r.ParseForm(); err != nil {
		serverError(w, r, h.logger, err, "/")
		return
	}

	editPath := "/edit-task/" + taskID.String()

	displayDate, err := dates.Display(r.PostFormValue("date"))
	if err != nil {
		flashRedirect(w, r, editPath, flash.Warning(msgInvalidDate))
		return
	}

	_, err = h.tasks.Update(r.Context(), taskID, r.PostFormValue("name"), displayDate)
	switch {
	case errors.Is(err, model.ErrNotFound):
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	case errors.Is(err, model.ErrTaskNameTaken):
		flashRedirect(w, r, editPath, flash.Warning(msgTaskNameTaken))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Confirm renders the delete confirmation page for a task.
func (h *Tasks) Confirm(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	}

	task, err := h.tasks.Get(r.Context(), taskID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/")
		return
	}

	render(w, r, h.logger, h.views, "confirm_delete", view.ConfirmData{
		Page: page(w, r, h.contextManager),
		Task: task,
	})
}

// Delete removes a task and returns to the home page.
func (h *Tasks) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	}

	err = h.tasks.Delete(r.Context(), taskID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		flashRedirect(w, r, "/", flash.Warning(msgTaskNotFound))
		return
	case err != nil:
		serverError(w, r, h.logger, err, "/")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
