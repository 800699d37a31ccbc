package realtime

import "sync"

// Conn: то, что нужно комнатам от транспорта.
type Conn interface {
	ID() string
	// Send ставит сообщение в очередь соединения; false, если оно отброшено.
	Send(msg Message) bool
	Close() error
}

// Rooms: комната -> набор соединений. Соединение состоит не более чем в одной комнате.
type Rooms struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]Conn // room -> connID -> conn
	byConn map[string]string          // connID -> room
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms:  make(map[string]map[string]Conn),
		byConn: make(map[string]string),
	}
}

// Join сначала выводит соединение из прежней комнаты и возвращает её имя ("" если не было).
func (r *Rooms) Join(c Conn, room string) (prev string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev = r.byConn[c.ID()]
	if prev == room {
		r.rooms[room][c.ID()] = c
		return prev
	}
	if prev != "" {
		r.leaveLocked(c.ID(), prev)
	}

	rs, ok := r.rooms[room]
	if !ok {
		rs = make(map[string]Conn)
		r.rooms[room] = rs
	}
	rs[c.ID()] = c
	r.byConn[c.ID()] = room
	return prev
}

// Leave возвращает комнату, из которой вышло соединение.
func (r *Rooms) Leave(connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.byConn[connID]
	if room != "" {
		r.leaveLocked(connID, room)
	}
	return room
}

func (r *Rooms) leaveLocked(connID, room string) {
	delete(r.byConn, connID)
	if rs, ok := r.rooms[room]; ok {
		delete(rs, connID)
		if len(rs) == 0 {
			delete(r.rooms, room)
		}
	}
}

// Broadcast рассылает всем в комнате, кроме excludeID; best-effort.
// Возвращает число соединений, принявших сообщение в очередь.
func (r *Rooms) Broadcast(room string, msg Message, excludeID string) int {
	r.mu.RLock()
	targets := make([]Conn, 0, len(r.rooms[room]))
	for id, c := range r.rooms[room] {
		if id != excludeID {
			targets = append(targets, c)
		}
	}
	r.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.Send(msg) {
			delivered++
		}
	}
	return delivered
}

func (r *Rooms) Members(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

func (r *Rooms) RoomOf(connID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byConn[connID]
}

func (r *Rooms) reset() {
	r.mu.Lock()
	r.rooms = make(map[string]map[string]Conn)
	r.byConn = make(map[string]string)
	r.mu.Unlock()
}
