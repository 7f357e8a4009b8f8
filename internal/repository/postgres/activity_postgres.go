package postgres

import (
	"context"
	"database/sql"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Append inserts an activity row.
func (r *ActivityPostgres) Append(ctx context.Context, entry *model.ActivityLog) error {
	const q = `
		INSERT INTO activity_logs (id, username, action, occurred_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.Username,
		entry.Action,
		entry.OccurredAt,
	)
	return err
}

// List returns activity rows ordered newest first.
func (r *ActivityPostgres) List(ctx context.Context) ([]model.ActivityLog, error) {
	const q = `
		SELECT id, username, action, occurred_at
		FROM activity_logs
		ORDER BY occurred_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.ActivityLog, 0)
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(
			&l.ID,
			&l.Username,
			&l.Action,
			&l.OccurredAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// ActiveUsernames returns usernames that logged in at or after `since` without
// a later logout inside the same window.
func (r *ActivityPostgres) ActiveUsernames(ctx context.Context, since time.Time) ([]string, error) {
	const q = `
		SELECT l.username
		FROM activity_logs l
		WHERE l.action = 'login'
		  AND l.occurred_at >= $1
		  AND NOT EXISTS (
			SELECT 1 FROM activity_logs o
			WHERE o.username = l.username
			  AND o.action = 'logout'
			  AND o.occurred_at >= l.occurred_at
		  )
		GROUP BY l.username
		ORDER BY l.username
	`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
