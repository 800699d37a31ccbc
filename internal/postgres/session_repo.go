package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/uniconnect/ama-service/internal/domain"
)

type SessionRepository struct {
	q querier
}

func NewSessionRepository(q querier) *SessionRepository {
	return &SessionRepository{q: q}
}

// Live возвращает самую свежую live-сессию; domain.ErrSessionNotFound, если таких нет.
func (r *SessionRepository) Live(ctx context.Context) (*domain.SessionView, error) {
	v, err := scanSessionView(r.q.QueryRow(ctx, queryLiveSession))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *SessionRepository) Upcoming(ctx context.Context) ([]domain.SessionView, error) {
	rows, err := r.q.Query(ctx, queryUpcomingSessions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SessionView, 0, 8)
	for rows.Next() {
		v, err := scanSessionView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *SessionRepository) Get(ctx context.Context, id int64) (*domain.SessionView, error) {
	v, err := scanSessionView(r.q.QueryRow(ctx, queryGetSession, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *SessionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, querySessionExists, id).Scan(&ok)
	return ok, err
}

func scanSessionView(row pgx.Row) (*domain.SessionView, error) {
	var v domain.SessionView
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.HostID,
		&v.Status,
		&v.StartTime,
		&v.EndTime,
		&v.MaxParticipants,
		&v.MeetingID,
		&v.MeetingLink,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Host.Name,
		&v.Host.Role,
		&v.Host.Company,
		&v.Host.Avatar,
		&v.RegisteredCount,
		&v.MessageCount,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
