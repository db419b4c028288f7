package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdo/taskdo-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create inserts a task. A name collision is not pre-checked: the unique
// constraint rejects it at commit and the violation is mapped to
// model.ErrTaskNameTaken.
func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, name, date, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, name, date, owner_id, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Name, task.Date, task.OwnerID,
		task.CreatedAt, task.UpdatedAt,
	).Scan(
		&savedTask.ID, &savedTask.Name, &savedTask.Date, &savedTask.OwnerID,
		&savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Task{}, model.ErrTaskNameTaken
		}
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	var task model.Task
	query := `SELECT id, name, date, owner_id, created_at, updated_at
			  FROM tasks WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Name, &task.Date, &task.OwnerID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, name, date, owner_id, created_at, updated_at
			  FROM tasks ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *TaskRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	query := `SELECT id, name, date, owner_id, created_at, updated_at
			  FROM tasks WHERE owner_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetByOwnerIDAndDate returns the owner's tasks whose stored display date
// equals date. The store only ever holds canonical display strings, so a
// plain equality match is sufficient.
func (r *TaskRepository) GetByOwnerIDAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Task, error) {
	query := `SELECT id, name, date, owner_id, created_at, updated_at
			  FROM tasks WHERE owner_id = $1 AND date = $2 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner and date: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// Update overwrites a task's name and date. The owner reference is set once
// at creation and never reassigned.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, name string, date string) (model.Task, error) {
	query := `UPDATE tasks SET name = $2, date = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING id, name, date, owner_id, created_at, updated_at`

	var task model.Task
	err := r.db.QueryRowContext(ctx, query, id, name, date).Scan(
		&task.ID, &task.Name, &task.Date, &task.OwnerID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Task{}, model.ErrTaskNameTaken
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID, &task.Name, &task.Date, &task.OwnerID,
			&task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
