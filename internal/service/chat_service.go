package service

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/uniconnect/ama-service/internal/domain"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type ChatRepository interface {
	Save(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error)
}

type SendInput struct {
	SessionID int64
	UserID    string
	UserName  string
	Message   string
	UserRole  *string
}

type ChatService struct {
	chat     ChatRepository
	sessions SessionRepository
	now      func() time.Time
}

func NewChatService(chat ChatRepository, sessions SessionRepository) *ChatService {
	return &ChatService{chat: chat, sessions: sessions, now: time.Now}
}

// Send сохраняет сообщение и возвращает сохранённую запись (id и timestamp от сервера).
// Ошибка хранилища -> ErrPersistence; рассылка остаётся на вызывающем.
func (s *ChatService) Send(ctx context.Context, in SendInput) (*domain.ChatMessage, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageRunes {
		return nil, domain.ErrMessageTooLong
	}
	if in.SessionID <= 0 {
		return nil, domain.ErrInvalidSessionID
	}

	ok, err := s.sessions.Exists(ctx, in.SessionID)
	if err != nil {
		return nil, persistErr("Failed to send message", err)
	}
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	msg, err := s.chat.Save(ctx, &domain.ChatMessage{
		SessionID:     in.SessionID,
		UserID:        in.UserID,
		UserName:      in.UserName,
		Message:       text,
		UserRole:      in.UserRole,
		IsHostMessage: domain.IsHostRole(in.UserRole),
		Timestamp:     s.now().UTC(),
	})
	if err != nil {
		return nil, persistErr("Failed to send message", err)
	}
	return msg, nil
}

// History отдаёт страницу истории в хронологическом порядке (старые сверху).
func (s *ChatService) History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	ok, err := s.sessions.Exists(ctx, sessionID)
	if err != nil {
		return nil, persistErr("Failed to fetch chat messages", err)
	}
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	page, err := s.chat.History(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, persistErr("Failed to fetch chat messages", err)
	}
	// из базы приходят новые сверху
	slices.Reverse(page)
	return page, nil
}
