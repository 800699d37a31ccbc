package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/uniconnect/ama-service/internal/domain"
)

type RegistrationRepository struct {
	db txBeginner
}

func NewRegistrationRepository(db txBeginner) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register защищён от гонок по max_participants: строка сессии блокируется,
// так что две параллельные регистрации не пробьют лимит.
// Возвращает сессию, в которую записали пользователя.
func (r *RegistrationRepository) Register(ctx context.Context, reg *domain.Registration) (*domain.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var s domain.Session
	err = tx.QueryRow(ctx, queryLockSession, reg.SessionID).Scan(
		&s.ID, &s.Title, &s.Description, &s.HostID, &s.Status, &s.StartTime, &s.EndTime,
		&s.MaxParticipants, &s.MeetingID, &s.MeetingLink, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if !s.Status.OpenForRegistration() {
		return nil, domain.ErrNotOpen
	}

	var exists bool
	if err := tx.QueryRow(ctx, queryRegistrationExists, reg.SessionID, reg.UserID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	var count int
	if err := tx.QueryRow(ctx, queryCountRegistrations, reg.SessionID).Scan(&count); err != nil {
		return nil, err
	}
	if count >= s.MaxParticipants {
		return nil, domain.ErrSessionFull
	}

	err = tx.QueryRow(ctx, queryInsertRegistration,
		reg.SessionID, reg.UserID, reg.UserName, reg.UserEmail, reg.UserRole,
	).Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RegistrationRepository) Participants(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx, queryListParticipants, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Participant, 0, 16)
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.UserID, &p.UserName, &p.UserEmail, &p.RegisteredAt, &p.IsHost); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
