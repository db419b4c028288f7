package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taskdo/taskdo-server/internal/model"
)

// TaskService is a mock implementation of handler.TaskService.
type TaskService struct {
	mock.Mock
}

func (m *TaskService) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskService) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskService) ListByOwnerOnDate(ctx context.Context, ownerID uuid.UUID, selected string) ([]model.Task, string, error) {
	args := m.Called(ctx, ownerID, selected)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]model.Task), args.String(1), args.Error(2)
}

func (m *TaskService) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskService) Update(ctx context.Context, id uuid.UUID, name, date string) (model.Task, error) {
	args := m.Called(ctx, id, name, date)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// NewTaskService creates a TaskService mock that asserts its expectations
// at test cleanup.
func NewTaskService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TaskService {
	m := &TaskService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
