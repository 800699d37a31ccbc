package service

import (
	"context"
	"sync"

	"github.com/uniconnect/ama-service/internal/domain"
)

type fakeSessions struct {
	byID map[int64]domain.SessionView
	live *domain.SessionView
	err  error
	gets int
}

func (f *fakeSessions) Live(context.Context) (*domain.SessionView, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.live == nil {
		return nil, domain.ErrSessionNotFound
	}
	return f.live, nil
}

func (f *fakeSessions) Upcoming(context.Context) ([]domain.SessionView, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.SessionView, 0, len(f.byID))
	for _, v := range f.byID {
		if v.Status == domain.StatusUpcoming {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeSessions) Get(_ context.Context, id int64) (*domain.SessionView, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &v, nil
}

func (f *fakeSessions) Exists(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byID[id]
	return ok, nil
}

// fakeRegistrations повторяет правила репозитория: статус, дубль, лимит.
type fakeRegistrations struct {
	mu       sync.Mutex
	sessions map[int64]domain.Session
	regs     map[int64][]domain.Registration
}

func newFakeRegistrations(sessions ...domain.Session) *fakeRegistrations {
	f := &fakeRegistrations{sessions: map[int64]domain.Session{}, regs: map[int64][]domain.Registration{}}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeRegistrations) Register(_ context.Context, reg *domain.Registration) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[reg.SessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !s.Status.OpenForRegistration() {
		return nil, domain.ErrNotOpen
	}
	for _, r := range f.regs[s.ID] {
		if r.UserID == reg.UserID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	if len(f.regs[s.ID]) >= s.MaxParticipants {
		return nil, domain.ErrSessionFull
	}
	reg.ID = int64(len(f.regs[s.ID]) + 1)
	f.regs[s.ID] = append(f.regs[s.ID], *reg)
	return &s, nil
}

func (f *fakeRegistrations) Participants(_ context.Context, id int64) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Participant{}
	for _, r := range f.regs[id] {
		out = append(out, domain.Participant{UserID: r.UserID, UserName: r.UserName, UserEmail: r.UserEmail})
	}
	return out, nil
}

type fakeChat struct {
	mu     sync.Mutex
	saved  []domain.ChatMessage
	err    error
	nextID int64
}

func (f *fakeChat) Save(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	out := *m
	out.ID = f.nextID
	f.saved = append(f.saved, out)
	return &out, nil
}

// History: как в базе, новые сверху.
func (f *fakeChat) History(_ context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var desc []domain.ChatMessage
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].SessionID == sessionID {
			desc = append(desc, f.saved[i])
		}
	}
	if offset >= len(desc) {
		return nil, nil
	}
	desc = desc[offset:]
	if len(desc) > limit {
		desc = desc[:limit]
	}
	return desc, nil
}
