package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// activeWindow is how far back a login counts as "online" without a logout.
const activeWindow = 5 * time.Minute

// AuthService handles user accounts and login/logout activity.
type AuthService interface {
	// Register creates a user with a bcrypt-hashed password.
	// Fails with ErrUserExists when the username is taken.
	Register(ctx context.Context, username, password string) (*model.User, error)

	// Login verifies credentials and appends a login activity row.
	// Fails with ErrInvalidCredentials on unknown user or wrong password.
	Login(ctx context.Context, username, password string) (*model.User, error)

	// Logout appends a logout activity row.
	Logout(ctx context.Context, username string) error

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]model.User, error)

	// DeleteUsers removes users by id. All ids must be valid UUIDs.
	DeleteUsers(ctx context.Context, ids []string) error

	// ActiveUsers returns usernames considered online: a login inside the
	// last five minutes with no logout since.
	ActiveUsers(ctx context.Context) ([]string, error)
}

type authService struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, activity repository.ActivityRepository) AuthService {
	return &authService{users: users, activity: activity}
}

func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.appendActivity(ctx, username, "login"); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, username string) error {
	if username == "" {
		return ErrIDRequired
	}
	return s.appendActivity(ctx, username, "logout")
}

func (s *authService) appendActivity(ctx context.Context, username, action string) error {
	entry := &model.ActivityLog{
		ID:         uuid.New().String(),
		Username:   username,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		return fmt.Errorf("append %s activity: %w", action, err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *authService) DeleteUsers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrIDRequired
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: %q", ErrIDRequired, id)
		}
	}
	return s.users.DeleteByIDs(ctx, ids)
}

func (s *authService) ActiveUsers(ctx context.Context) ([]string, error) {
	return s.activity.ActiveUsernames(ctx, time.Now().UTC().Add(-activeWindow))
}
