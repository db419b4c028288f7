package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdo/taskdo-server/internal/model"
)

func newMockConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Connection{DB: db}, mock
}

func userColumns() []string {
	return []string{"id", "email", "password_hash", "name", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	user := model.User{
		ID:           uuid.New(),
		Email:        "a@b.com",
		PasswordHash: []byte("$2a$10$hash"),
		Name:         "Ann",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt))

	saved, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, saved.ID)
	assert.Equal(t, user.Email, saved.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), model.User{ID: uuid.New(), Email: "a@b.com"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, password_hash, name, created_at, updated_at\s+FROM users WHERE email`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id, "a@b.com", []byte("hash"), "Ann", now, now))

	user, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Ann", user.Name)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewUserRepository(conn)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(sql.ErrNoRows))
	assert.False(t, isUniqueViolation(nil))
}
