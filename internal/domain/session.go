package domain

import (
	"strconv"
	"strings"
	"time"
)

type SessionStatus string

const (
	StatusUpcoming  SessionStatus = "upcoming"
	StatusLive      SessionStatus = "live"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// OpenForRegistration: регистрироваться можно в upcoming и live.
func (s SessionStatus) OpenForRegistration() bool {
	return s == StatusUpcoming || s == StatusLive
}

type Session struct {
	ID              int64         `db:"id"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	HostID          *int64        `db:"host_id"`
	Status          SessionStatus `db:"status"`
	StartTime       time.Time     `db:"start_time"`
	EndTime         *time.Time    `db:"end_time"`
	MaxParticipants int           `db:"max_participants"`
	MeetingID       string        `db:"meeting_id"`
	MeetingLink     *string       `db:"meeting_link"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// MeetingURL возвращает сохранённую ссылку или строит её из baseURL и meeting_id.
func (s Session) MeetingURL(baseURL string) string {
	if s.MeetingLink != nil && *s.MeetingLink != "" {
		return *s.MeetingLink
	}
	return strings.TrimRight(baseURL, "/") + "/" + s.MeetingID
}

// SessionView: сессия с данными хоста и счётчиками для списков.
type SessionView struct {
	Session
	Host            HostSummary
	RegisteredCount int
	MessageCount    int
}

// RoomKey: имя комнаты realtime-канала для сессии.
func RoomKey(sessionID int64) string {
	return "session-" + strconv.FormatInt(sessionID, 10)
}
