package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidEmail is returned when a registration email fails the shape
	// check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWrongPassword is returned when login credentials do not match the
	// stored hash.
	ErrWrongPassword = errors.New("wrong password")
	// ErrTaskNameTaken is returned when a task insert or update collides with
	// an existing task name. Task names are unique store-wide.
	ErrTaskNameTaken = errors.New("task name already taken")
)
