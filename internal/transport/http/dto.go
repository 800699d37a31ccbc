package http

import (
	"time"

	"github.com/samber/lo"

	"github.com/uniconnect/ama-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HostItem struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Avatar  string `json:"avatar,omitempty"`
}

type LiveSessionItem struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Host            HostItem  `json:"host"`
	StartTime       time.Time `json:"startTime"`
	MeetingLink     string    `json:"meetingLink"`
	RegisteredCount int       `json:"registeredCount"`
	MessageCount    int       `json:"messageCount"`
	Status          string    `json:"status"`
}

type LiveResponse struct {
	IsLive  bool             `json:"isLive"`
	Session *LiveSessionItem `json:"session,omitempty"`
	Message string           `json:"message,omitempty"`
}

type UpcomingItem struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Host            HostItem  `json:"host"`
	StartTime       time.Time `json:"startTime"`
	MeetingID       string    `json:"meetingId"`
	MeetingLink     string    `json:"meetingLink"`
	RegisteredCount int       `json:"registeredCount"`
	MaxParticipants int       `json:"maxParticipants"`
	Status          string    `json:"status"`
}

type UpcomingResponse struct {
	Sessions []UpcomingItem `json:"sessions"`
}

type SessionItem struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	MaxParticipants int        `json:"maxParticipants"`
	MeetingLink     string     `json:"meetingLink"`
	Host            HostItem   `json:"host"`
}

type RegisteredSession struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	MeetingLink string    `json:"meetingLink"`
}

type RegisterResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Session RegisteredSession `json:"session"`
}

type HighlightsResponse struct {
	Highlights domain.Highlights `json:"highlights"`
}

type HostDetails struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	Company string  `json:"company"`
	Avatar  string  `json:"avatar"`
	Bio     *string `json:"bio"`
}

type HostsResponse struct {
	Hosts []HostDetails `json:"hosts"`
}

type ChatMessageItem struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	Message       string    `json:"message"`
	UserRole      *string   `json:"userRole"`
	Timestamp     time.Time `json:"timestamp"`
	IsHostMessage bool      `json:"isHostMessage"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageItem `json:"messages"`
}

// ChatSessionResponse: шапка чата: без описания и аватара.
type ChatSessionResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"startTime"`
	Host      HostItem  `json:"host"`
}

type ParticipantItem struct {
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	RegisteredAt time.Time `json:"registeredAt"`
	IsHost       bool      `json:"isHost"`
}

type ParticipantsResponse struct {
	Participants []ParticipantItem `json:"participants"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type EmailResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func hostItem(h domain.HostSummary) HostItem {
	return HostItem{Name: h.Name, Role: h.Role, Company: h.Company, Avatar: h.Avatar}
}

func upcomingItems(list []domain.SessionView, link func(domain.Session) string) []UpcomingItem {
	return lo.Map(list, func(v domain.SessionView, _ int) UpcomingItem {
		return UpcomingItem{
			ID:              v.ID,
			Title:           v.Title,
			Description:     v.Description,
			Host:            hostItem(v.Host),
			StartTime:       v.StartTime,
			MeetingID:       v.MeetingID,
			MeetingLink:     link(v.Session),
			RegisteredCount: v.RegisteredCount,
			MaxParticipants: v.MaxParticipants,
			Status:          string(v.Status),
		}
	})
}

func hostDetails(list []domain.Host) []HostDetails {
	return lo.Map(list, func(h domain.Host, _ int) HostDetails {
		return HostDetails{
			ID: h.ID, Name: h.Name, Email: h.Email, Role: h.Role,
			Company: h.Company, Avatar: h.Avatar, Bio: h.Bio,
		}
	})
}

func chatItems(list []domain.ChatMessage) []ChatMessageItem {
	return lo.Map(list, func(m domain.ChatMessage, _ int) ChatMessageItem {
		return ChatMessageItem{
			ID:            m.ID,
			UserID:        m.UserID,
			UserName:      m.UserName,
			Message:       m.Message,
			UserRole:      m.UserRole,
			Timestamp:     m.Timestamp,
			IsHostMessage: m.IsHostMessage,
		}
	})
}

func participantItems(list []domain.Participant) []ParticipantItem {
	return lo.Map(list, func(p domain.Participant, _ int) ParticipantItem {
		return ParticipantItem{
			UserID:       p.UserID,
			UserName:     p.UserName,
			UserEmail:    p.UserEmail,
			RegisteredAt: p.RegisteredAt,
			IsHost:       p.IsHost,
		}
	})
}
