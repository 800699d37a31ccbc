package domain

import (
	"strings"
	"time"
)

const MaxMessageRunes = 4000

type ChatMessage struct {
	ID            int64     `db:"id"`
	SessionID     int64     `db:"session_id"`
	UserID        string    `db:"user_id"`
	UserName      string    `db:"user_name"`
	Message       string    `db:"message"`
	UserRole      *string   `db:"user_role"`
	IsHostMessage bool      `db:"is_host_message"`
	Timestamp     time.Time `db:"timestamp"`
}

// IsHostRole: сообщение считается сообщением хоста, если роль автора host.
func IsHostRole(role *string) bool {
	return role != nil && strings.EqualFold(strings.TrimSpace(*role), "host")
}
