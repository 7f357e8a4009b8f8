package repository

import (
	"context"

	"docflow/internal/model"
)

// UserRepository defines data access for user accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByUsername returns a user by username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]model.User, error)

	// DeleteByIDs removes the users with the given ids. Missing ids are ignored.
	DeleteByIDs(ctx context.Context, ids []string) error
}
