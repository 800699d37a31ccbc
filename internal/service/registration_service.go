package service

import (
	"context"
	"strings"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/pkg/validate"
)

type RegistrationRepository interface {
	Register(ctx context.Context, reg *domain.Registration) (*domain.Session, error)
	Participants(ctx context.Context, sessionID int64) ([]domain.Participant, error)
}

type RegisterInput struct {
	UserID    string  `json:"userId" validate:"notblank,max=255"`
	UserName  string  `json:"userName" validate:"notblank,max=255"`
	UserEmail string  `json:"userEmail" validate:"required,email,max=255"`
	UserRole  *string `json:"userRole" validate:"omitempty,max=100"`
}

type Registered struct {
	Registration domain.Registration
	Session      domain.Session
	MeetingLink  string
}

type RegistrationService struct {
	repo           RegistrationRepository
	meetingBaseURL string
}

func NewRegistrationService(repo RegistrationRepository, meetingBaseURL string) *RegistrationService {
	return &RegistrationService{repo: repo, meetingBaseURL: meetingBaseURL}
}

// Register записывает пользователя на сессию. Проверки статуса, дубля и лимита
// делает репозиторий в одной транзакции.
func (s *RegistrationService) Register(ctx context.Context, sessionID int64, in RegisterInput) (*Registered, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	reg := domain.Registration{
		SessionID: sessionID,
		UserID:    strings.TrimSpace(in.UserID),
		UserName:  strings.TrimSpace(in.UserName),
		UserEmail: strings.TrimSpace(in.UserEmail),
		UserRole:  in.UserRole,
	}
	sess, err := s.repo.Register(ctx, &reg)
	if err != nil {
		return nil, persistErr("Failed to register for session", err)
	}
	return &Registered{
		Registration: reg,
		Session:      *sess,
		MeetingLink:  sess.MeetingURL(s.meetingBaseURL),
	}, nil
}

func (s *RegistrationService) Participants(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
	list, err := s.repo.Participants(ctx, sessionID)
	if err != nil {
		return nil, persistErr("Failed to fetch participants", err)
	}
	return list, nil
}
