package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
)

// Auth provides registration and credential verification.
type Auth struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewAuth(userStore model.UserStore, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		logger:    logger,
	}
}

// Register creates a new user. The email shape check is deliberately
// shallow: an address missing "@" or missing "." is rejected, anything else
// passes. The raw password is hashed with bcrypt and discarded.
func (a *Auth) Register(ctx context.Context, email, password, name string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		a.logger.Info("Auth service: rejected malformed email",
			"email", email)
		return model.User{}, model.ErrInvalidEmail
	}

	existingUser, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	savedUser, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			// Lost the race to another registration with the same email;
			// the unique index is the authority.
			return model.User{}, model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed",
		"email", email,
		"user_id", savedUser.ID)

	return savedUser, nil
}

// Login verifies credentials. An unknown email fails with model.ErrNotFound,
// a known email with a non-matching password fails with
// model.ErrWrongPassword. The stored hash is never compared as plaintext.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: verifying credentials",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", email)
		return model.User{}, model.ErrWrongPassword
	}

	a.logger.Info("Auth service: credentials verified",
		"email", email,
		"user_id", user.ID)

	return user, nil
}
