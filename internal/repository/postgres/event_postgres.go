package postgres

import (
	"context"
	"database/sql"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// EventPostgres is a PostgreSQL implementation of repository.EventRepository.
type EventPostgres struct {
	db *sql.DB
}

// NewEventPostgres creates a new EventPostgres repository.
func NewEventPostgres(db *sql.DB) *EventPostgres {
	return &EventPostgres{db: db}
}

var _ repository.EventRepository = (*EventPostgres)(nil)

// Append inserts an event row and returns the stored record.
func (r *EventPostgres) Append(ctx context.Context, ev *model.Event) (*model.Event, error) {
	const q = `
		INSERT INTO events (id, username, action, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, action, occurred_at
	`
	row := r.db.QueryRowContext(ctx, q,
		ev.ID,
		ev.Username,
		ev.Action,
		ev.OccurredAt,
	)
	var out model.Event
	if err := row.Scan(
		&out.ID,
		&out.Username,
		&out.Action,
		&out.OccurredAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns events ordered newest first.
func (r *EventPostgres) List(ctx context.Context) ([]model.Event, error) {
	const q = `
		SELECT id, username, action, occurred_at
		FROM events
		ORDER BY occurred_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID,
			&e.Username,
			&e.Action,
			&e.OccurredAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
