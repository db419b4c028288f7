package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetAll(ctx context.Context) ([]Task, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetByOwnerIDAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]Task, error)
	Update(ctx context.Context, id uuid.UUID, name string, date string) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task represents a stored task entity. Name is unique across the whole
// store, not per owner. Date holds the canonical display string produced by
// the dates package ("January 5, 2024"); the store never sees any other form.
type Task struct {
	ID        uuid.UUID
	Name      string
	Date      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	Name    string
	Date    string
	OwnerID uuid.UUID
}
