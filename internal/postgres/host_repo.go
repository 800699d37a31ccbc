package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/uniconnect/ama-service/internal/domain"
)

type HostRepository struct {
	q querier
}

func NewHostRepository(q querier) *HostRepository {
	return &HostRepository{q: q}
}

func (r *HostRepository) List(ctx context.Context) ([]domain.Host, error) {
	rows, err := r.q.Query(ctx, queryListHosts)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[domain.Host])
}
