package model

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityLog records a login or logout action for a user.
type ActivityLog struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Action     string    `json:"action"` // "login" or "logout"
	OccurredAt time.Time `json:"occurred_at"`
}

// Event records a UI-originated activity event, e.g. a processed document
// download or a button click.
type Event struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
