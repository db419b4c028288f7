package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdo/taskdo-server/internal/dates"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// Task provides task CRUD scoped by owner at creation time. Update and
// Delete intentionally take no owner: the source system never checked
// ownership on those paths and any signed-in user may touch any task.
type Task struct {
	taskStore model.TaskStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, userStore model.UserStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger,
	}
}

// Create stores a new task after verifying the owner exists. The date in
// params must already be canonical. A duplicate name anywhere in the store
// fails with model.ErrTaskNameTaken, raised by the storage commit.
func (s *Task) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	_, err := s.userStore.GetByID(ctx, params.OwnerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, fmt.Errorf("task owner %s: %w", params.OwnerID, model.ErrNotFound)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	task := model.Task{
		ID:        uuid.New(),
		Name:      params.Name,
		Date:      params.Date,
		OwnerID:   params.OwnerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	savedTask, err := s.taskStore.Create(ctx, task)
	if err != nil {
		if errors.Is(err, model.ErrTaskNameTaken) {
			s.logger.Info("Task service: duplicate task name",
				"name", params.Name)
			return model.Task{}, model.ErrTaskNameTaken
		}
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created",
		"task_id", savedTask.ID,
		"owner_id", savedTask.OwnerID)

	return savedTask, nil
}

// List returns every task in the store, insertion order.
func (s *Task) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.taskStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return tasks, nil
}

// ListByOwner returns the owner's tasks, insertion order.
func (s *Task) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner: %w", err)
	}
	return tasks, nil
}

// ListByOwnerOnDate normalizes selected ("YYYY-MM-DD") and returns the
// owner's tasks stored under the resulting display date, along with the
// display date itself for rendering.
func (s *Task) ListByOwnerOnDate(ctx context.Context, ownerID uuid.UUID, selected string) ([]model.Task, string, error) {
	displayDate, err := dates.Display(selected)
	if err != nil {
		return nil, "", fmt.Errorf("failed to normalize date: %w", err)
	}

	tasks, err := s.taskStore.GetByOwnerIDAndDate(ctx, ownerID, displayDate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get tasks by owner and date: %w", err)
	}

	return tasks, displayDate, nil
}

// Get looks up one task, model.ErrNotFound on miss.
func (s *Task) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}
	return task, nil
}

// Update overwrites a task's name and date. No ownership check.
func (s *Task) Update(ctx context.Context, id uuid.UUID, name, date string) (model.Task, error) {
	task, err := s.taskStore.Update(ctx, id, name, date)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrTaskNameTaken) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated",
		"task_id", task.ID)

	return task, nil
}

// Delete removes a task permanently. No ownership check.
func (s *Task) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"task_id", id)

	return nil
}
