// Package realtime: комнаты сессий, присутствие и рассылка чата поверх
// абстрактного соединения. Транспорт (websocket) живёт в transport/ws.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/internal/service"
	"github.com/uniconnect/ama-service/pkg/errs"
	"github.com/uniconnect/ama-service/pkg/validate"
)

// MessageSender сохраняет сообщение чата (service.ChatService).
type MessageSender interface {
	Send(ctx context.Context, in service.SendInput) (*domain.ChatMessage, error)
}

// Hub: состояние realtime-слоя одного процесса. Создаётся в main и
// передаётся транспорту; глобальных карт нет.
type Hub struct {
	registry  *Registry
	rooms     *Rooms
	presence  *Presence
	persister MessageSender
	log       *slog.Logger

	mu    sync.Mutex
	conns map[string]Conn
}

func NewHub(persister MessageSender, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	registry := NewRegistry()
	rooms := NewRooms()
	return &Hub{
		registry:  registry,
		rooms:     rooms,
		presence:  NewPresence(rooms, registry),
		persister: persister,
		log:       log,
		conns:     make(map[string]Conn),
	}
}

func (h *Hub) Registry() *Registry { return h.registry }
func (h *Hub) Rooms() *Rooms       { return h.rooms }

// Connect запоминает соединение, чтобы Close мог его закрыть.
func (h *Hub) Connect(c Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
}

// Dispatch разбирает входящий кадр и вызывает обработчик по типу.
// Кадры одного соединения обрабатываются последовательно.
func (h *Hub) Dispatch(ctx context.Context, c Conn, raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.Send(errorMessage("Invalid message format"))
		return
	}

	switch in.Type {
	case EventJoinSession:
		var p JoinPayload
		if err := decode(in.Payload, &p); err != nil {
			h.reject(ctx, c, in.Type, err)
			return
		}
		h.Join(c, p)
	case EventSendMessage:
		var p SendPayload
		if err := decode(in.Payload, &p); err != nil {
			h.reject(ctx, c, in.Type, err)
			return
		}
		h.SendMessage(ctx, c, p)
	case EventTyping:
		var p TypingPayload
		if err := decode(in.Payload, &p); err != nil {
			h.reject(ctx, c, in.Type, err)
			return
		}
		h.Typing(c, p)
	default:
		h.log.DebugContext(ctx, "ws unknown event ignored", slog.String("conn_id", c.ID()), slog.String("type", in.Type))
	}
}

func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errs.New(errs.ErrInvalidInput, "Missing payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			return err
		}
		return errs.Wrap(errs.ErrInvalidInput, "Invalid payload", err)
	}
	return validate.Struct(dst)
}

func (h *Hub) reject(ctx context.Context, c Conn, event string, err error) {
	h.log.DebugContext(ctx, "ws payload rejected",
		slog.String("conn_id", c.ID()), slog.String("type", event), slog.Any("err", err))
	c.Send(errorMessage(errs.Message(err)))
}

// Join: смена комнаты = user-left в старой, затем user-joined в новой.
// Повторный join в ту же комнату только обновляет членство.
func (h *Hub) Join(c Conn, p JoinPayload) {
	sid := int64(p.SessionID)
	m := Membership{UserID: strings.TrimSpace(p.UserID), UserName: strings.TrimSpace(p.UserName), SessionID: sid}

	prev, joined := h.registry.Lookup(c.ID())
	if joined && prev.SessionID == sid {
		h.registry.Record(c.ID(), m)
		return
	}
	if joined {
		h.presence.AnnounceLeave(c.ID())
	}

	h.rooms.Join(c, domain.RoomKey(sid))
	h.registry.Record(c.ID(), m)
	h.presence.AnnounceJoin(c.ID(), sid, m.UserID, m.UserName)

	h.log.Info("ws joined session",
		slog.String("conn_id", c.ID()), slog.Int64("session_id", sid), slog.String("user_id", m.UserID))
}

// SendMessage: сначала сохранить, потом разослать всей комнате.
// Ошибка уходит только отправителю, в комнату ничего не идёт.
func (h *Hub) SendMessage(ctx context.Context, c Conn, p SendPayload) {
	m, joined := h.registry.Lookup(c.ID())

	in := service.SendInput{
		SessionID: int64(p.SessionID),
		UserID:    strings.TrimSpace(p.UserID),
		UserName:  strings.TrimSpace(p.UserName),
		Message:   p.Message,
		UserRole:  p.UserRole,
	}
	if joined {
		if in.SessionID == 0 {
			in.SessionID = m.SessionID
		}
		if in.UserID == "" {
			in.UserID = m.UserID
		}
		if in.UserName == "" {
			in.UserName = m.UserName
		}
	}
	if in.SessionID == 0 {
		c.Send(errorMessage("sessionId is required"))
		return
	}
	if in.UserID == "" || in.UserName == "" {
		c.Send(errorMessage("userId and userName are required"))
		return
	}

	saved, err := h.persister.Send(ctx, in)
	if err != nil {
		h.log.WarnContext(ctx, "ws message not saved",
			slog.String("conn_id", c.ID()), slog.Int64("session_id", in.SessionID), slog.Any("err", err))
		c.Send(errorMessage(errs.Message(err)))
		return
	}

	n := h.rooms.Broadcast(domain.RoomKey(saved.SessionID), newMessageFrom(saved), "")
	h.log.DebugContext(ctx, "ws message broadcast",
		slog.Int64("session_id", saved.SessionID), slog.Int64("message_id", saved.ID), slog.Int("delivered", n))
}

func (h *Hub) Typing(c Conn, p TypingPayload) {
	sid := int64(p.SessionID)
	name := strings.TrimSpace(p.UserName)
	if m, ok := h.registry.Lookup(c.ID()); ok {
		if sid == 0 {
			sid = m.SessionID
		}
		if name == "" {
			name = m.UserName
		}
	}
	if sid == 0 {
		c.Send(errorMessage("sessionId is required"))
		return
	}
	if name == "" {
		c.Send(errorMessage("userName is required"))
		return
	}
	h.presence.AnnounceTyping(c.ID(), sid, name, p.IsTyping)
}

// Disconnect: user-left (если был join), затем чистка Registry и комнат.
func (h *Hub) Disconnect(c Conn) {
	if m, ok := h.presence.AnnounceLeave(c.ID()); ok {
		h.log.Info("ws left session",
			slog.String("conn_id", c.ID()), slog.Int64("session_id", m.SessionID), slog.String("user_id", m.UserID))
	}
	h.registry.Remove(c.ID())
	h.rooms.Leave(c.ID())

	h.mu.Lock()
	delete(h.conns, c.ID())
	h.mu.Unlock()
}

// Close закрывает все соединения и сбрасывает состояние (shutdown).
func (h *Hub) Close() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]Conn)
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	h.registry.reset()
	h.rooms.reset()
}
