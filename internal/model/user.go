package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered user. PasswordHash holds the bcrypt hash of
// the registration password; the raw password is never stored.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
