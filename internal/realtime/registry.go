package realtime

import "sync"

// Membership: к какой сессии и от чьего имени подключено соединение.
type Membership struct {
	UserID    string
	UserName  string
	SessionID int64
}

// Registry: connID -> Membership. Только память процесса.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Membership
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Membership)}
}

// Record перезаписывает запись соединения.
func (r *Registry) Record(connID string, m Membership) {
	r.mu.Lock()
	r.m[connID] = m
	r.mu.Unlock()
}

func (r *Registry) Lookup(connID string) (Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.m[connID]
	return m, ok
}

// Remove: no-op, если записи нет.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	delete(r.m, connID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

func (r *Registry) reset() {
	r.mu.Lock()
	r.m = make(map[string]Membership)
	r.mu.Unlock()
}
