package service

import (
	"context"
	"errors"

	"github.com/uniconnect/ama-service/internal/domain"
)

type SessionRepository interface {
	Live(ctx context.Context) (*domain.SessionView, error)
	Upcoming(ctx context.Context) ([]domain.SessionView, error)
	Get(ctx context.Context, id int64) (*domain.SessionView, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type HostRepository interface {
	List(ctx context.Context) ([]domain.Host, error)
}

type SessionService struct {
	sessions       SessionRepository
	hosts          HostRepository
	meetingBaseURL string
}

func NewSessionService(sessions SessionRepository, hosts HostRepository, meetingBaseURL string) *SessionService {
	return &SessionService{sessions: sessions, hosts: hosts, meetingBaseURL: meetingBaseURL}
}

// Live возвращает текущую live-сессию; ok=false, если ни одной нет.
func (s *SessionService) Live(ctx context.Context) (*domain.SessionView, bool, error) {
	v, err := s.sessions.Live(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, nil
		}
		return nil, false, persistErr("Failed to fetch live session", err)
	}
	return v, true, nil
}

func (s *SessionService) Upcoming(ctx context.Context) ([]domain.SessionView, error) {
	list, err := s.sessions.Upcoming(ctx)
	if err != nil {
		return nil, persistErr("Failed to fetch upcoming sessions", err)
	}
	return list, nil
}

func (s *SessionService) Get(ctx context.Context, id int64) (*domain.SessionView, error) {
	v, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, persistErr("Failed to fetch session info", err)
	}
	return v, nil
}

func (s *SessionService) Hosts(ctx context.Context) ([]domain.Host, error) {
	list, err := s.hosts.List(ctx)
	if err != nil {
		return nil, persistErr("Failed to fetch hosts", err)
	}
	return list, nil
}

func (s *SessionService) MeetingLink(sess domain.Session) string {
	return sess.MeetingURL(s.meetingBaseURL)
}
