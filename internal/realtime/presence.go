package realtime

import (
	"time"

	"github.com/uniconnect/ama-service/internal/domain"
)

// Presence рассылает join/typing/leave. Инициатор события копию не получает.
type Presence struct {
	rooms    *Rooms
	registry *Registry
	now      func() time.Time
}

func NewPresence(rooms *Rooms, registry *Registry) *Presence {
	return &Presence{rooms: rooms, registry: registry, now: time.Now}
}

func (p *Presence) AnnounceJoin(connID string, sessionID int64, userID, userName string) {
	p.rooms.Broadcast(domain.RoomKey(sessionID), Message{
		Type:    EventUserJoined,
		Payload: UserJoinedPayload{UserID: userID, UserName: userName, Timestamp: p.now().UTC()},
	}, connID)
}

func (p *Presence) AnnounceTyping(connID string, sessionID int64, userName string, isTyping bool) {
	p.rooms.Broadcast(domain.RoomKey(sessionID), Message{
		Type:    EventUserTyping,
		Payload: UserTypingPayload{UserName: userName, IsTyping: isTyping},
	}, connID)
}

// AnnounceLeave берёт членство из Registry; без записи: тихий no-op.
// Запись не удаляет: это делает вызывающий.
func (p *Presence) AnnounceLeave(connID string) (Membership, bool) {
	m, ok := p.registry.Lookup(connID)
	if !ok {
		return Membership{}, false
	}
	p.rooms.Broadcast(domain.RoomKey(m.SessionID), Message{
		Type:    EventUserLeft,
		Payload: UserLeftPayload{UserName: m.UserName, Timestamp: p.now().UTC()},
	}, connID)
	return m, true
}
