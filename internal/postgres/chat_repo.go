package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/uniconnect/ama-service/internal/domain"
)

type ChatRepository struct {
	q querier
}

func NewChatRepository(q querier) *ChatRepository {
	return &ChatRepository{q: q}
}

// Save вставляет сообщение; id и timestamp назначает сервер.
func (r *ChatRepository) Save(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	rows, err := r.q.Query(ctx, queryInsertMessage,
		m.SessionID, m.UserID, m.UserName, m.Message, m.UserRole, m.IsHostMessage, ts)
	if err != nil {
		return nil, mapPgError(err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[domain.ChatMessage])
	if err != nil {
		return nil, mapPgError(err)
	}
	return saved, nil
}

// History отдаёт страницу сообщений от новых к старым (timestamp DESC).
func (r *ChatRepository) History(ctx context.Context, sessionID int64, limit, offset int) ([]domain.ChatMessage, error) {
	rows, err := r.q.Query(ctx, queryMessageHistory, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[domain.ChatMessage])
}
