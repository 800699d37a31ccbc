package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/pkg/errs"
)

/*
абстрактный слой над *pgxpool.Pool / pgx.Tx
чтобы запросы можно было делать атомарно а не по одному
*/
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type txBeginner interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errs.Wrap(errs.ErrConflict, "Resource already exists", err)
		case pgForeignKeyViolation:
			if pgErr.ConstraintName == "chat_messages_session_id_fkey" ||
				pgErr.ConstraintName == "session_registrations_session_id_fkey" {
				return domain.ErrSessionNotFound
			}
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
