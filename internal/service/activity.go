package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// ActivityService exposes activity logs and UI event recording.
type ActivityService interface {
	// Logs returns login/logout activity rows, newest first.
	Logs(ctx context.Context) ([]model.ActivityLog, error)

	// RecordEvent stores a UI event (e.g. "document-processed", "button-clicked").
	RecordEvent(ctx context.Context, username, action string, occurredAt time.Time) (*model.Event, error)

	// ListEvents returns stored UI events, newest first.
	ListEvents(ctx context.Context) ([]model.Event, error)
}

type activityService struct {
	activity repository.ActivityRepository
	events   repository.EventRepository
}

// NewActivityService constructs a new ActivityService.
func NewActivityService(activity repository.ActivityRepository, events repository.EventRepository) ActivityService {
	return &activityService{activity: activity, events: events}
}

func (s *activityService) Logs(ctx context.Context) ([]model.ActivityLog, error) {
	return s.activity.List(ctx)
}

func (s *activityService) RecordEvent(ctx context.Context, username, action string, occurredAt time.Time) (*model.Event, error) {
	if username == "" || action == "" {
		return nil, ErrIDRequired
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return s.events.Append(ctx, &model.Event{
		ID:         uuid.New().String(),
		Username:   username,
		Action:     action,
		OccurredAt: occurredAt,
	})
}

func (s *activityService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}
