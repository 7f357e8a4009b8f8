package repository

import (
	"context"
	"time"

	"docflow/internal/model"
)

// ActivityRepository persists login/logout activity rows.
type ActivityRepository interface {
	// Append inserts an activity row.
	Append(ctx context.Context, entry *model.ActivityLog) error

	// List returns activity rows, newest first.
	List(ctx context.Context) ([]model.ActivityLog, error)

	// ActiveUsernames returns usernames with a login at or after `since`
	// and no logout after that point.
	ActiveUsernames(ctx context.Context, since time.Time) ([]string, error)
}

// EventRepository persists UI activity events (processed documents, button clicks).
type EventRepository interface {
	// Append inserts an event row and returns the stored row.
	Append(ctx context.Context, ev *model.Event) (*model.Event, error)

	// List returns events, newest first.
	List(ctx context.Context) ([]model.Event, error)
}
