package domain

import "time"

type Registration struct {
	ID           int64     `db:"id"`
	SessionID    int64     `db:"session_id"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	UserEmail    string    `db:"user_email"`
	UserRole     *string   `db:"user_role"`
	RegisteredAt time.Time `db:"registered_at"`
}

// Participant: регистрация с признаком хоста (email совпал с hosts.email).
type Participant struct {
	UserID       string
	UserName     string
	UserEmail    string
	RegisteredAt time.Time
	IsHost       bool
}
