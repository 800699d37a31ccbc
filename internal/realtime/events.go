package realtime

import (
	"encoding/json"
	"time"

	"github.com/uniconnect/ama-service/internal/domain"
)

// Типы событий канала
const (
	EventJoinSession = "join-session" // client -> server
	EventSendMessage = "send-message" // client -> server
	EventTyping      = "typing"       // client -> server

	EventUserJoined   = "user-joined"   // server -> room
	EventNewMessage   = "new-message"   // server -> room, включая отправителя
	EventUserTyping   = "user-typing"   // server -> room
	EventUserLeft     = "user-left"     // server -> room
	EventMessageError = "message-error" // server -> только отправителю
)

// Message: исходящий конверт {"type","payload"}.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Inbound: входящий конверт; payload разбирается по типу.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JoinPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"required,gt=0"`
	UserID    string           `json:"userId" validate:"notblank,max=255"`
	UserName  string           `json:"userName" validate:"notblank,max=255"`
}

// SendPayload: sessionId/userId/userName можно не передавать после join-session.
type SendPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"gte=0"`
	UserID    string           `json:"userId" validate:"max=255"`
	UserName  string           `json:"userName" validate:"max=255"`
	Message   string           `json:"message"`
	UserRole  *string          `json:"userRole" validate:"omitempty,max=100"`
}

type TypingPayload struct {
	SessionID domain.SessionID `json:"sessionId" validate:"gte=0"`
	UserName  string           `json:"userName" validate:"max=255"`
	IsTyping  bool             `json:"isTyping"`
}

type UserJoinedPayload struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

type NewMessagePayload struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Message   string    `json:"message"`
	UserRole  *string   `json:"userRole"`
	Timestamp time.Time `json:"timestamp"`
}

type UserTypingPayload struct {
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

type UserLeftPayload struct {
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageErrorPayload struct {
	Error string `json:"error"`
}

func newMessageFrom(m *domain.ChatMessage) Message {
	return Message{
		Type: EventNewMessage,
		Payload: NewMessagePayload{
			ID:        m.ID,
			UserID:    m.UserID,
			UserName:  m.UserName,
			Message:   m.Message,
			UserRole:  m.UserRole,
			Timestamp: m.Timestamp,
		},
	}
}

func errorMessage(text string) Message {
	return Message{Type: EventMessageError, Payload: MessageErrorPayload{Error: text}}
}
