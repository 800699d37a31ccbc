package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniconnect/ama-service/internal/domain"
)

var sessionColumns = []string{
	"id", "title", "description", "host_id", "status", "start_time", "end_time",
	"max_participants", "meeting_id", "meeting_link", "created_at", "updated_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func lockedSession(mock pgxmock.PgxPoolIface, status domain.SessionStatus, capacity int) *pgxmock.Rows {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return mock.NewRows(sessionColumns).AddRow(
		int64(7), "Career AMA", "Ask anything", nil, status, now, nil,
		capacity, "ama-7", nil, now, now,
	)
}

func newRegistration() *domain.Registration {
	return &domain.Registration{
		SessionID: 7,
		UserID:    "u-1",
		UserName:  "Asha",
		UserEmail: "asha@cu.ac.in",
	}
}

func TestRegister_Success(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRegistrationRepository(mock)
	reg := newRegistration()
	at := time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).
		WillReturnRows(lockedSession(mock, domain.StatusLive, 2))
	mock.ExpectQuery(queryRegistrationExists).WithArgs(int64(7), "u-1").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(queryCountRegistrations).WithArgs(int64(7)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(queryInsertRegistration).
		WithArgs(int64(7), "u-1", "Asha", "asha@cu.ac.in", pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "registered_at"}).AddRow(int64(41), at))
	mock.ExpectCommit()

	s, err := repo.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "ama-7", s.MeetingID)
	assert.Equal(t, 2, s.MaxParticipants)
	assert.Equal(t, int64(41), reg.ID)
	assert.Equal(t, at, reg.RegisteredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		expect func(mock pgxmock.PgxPoolIface)
		want   error
	}{
		{
			name: "session not found",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)
			},
			want: domain.ErrSessionNotFound,
		},
		{
			name: "session closed",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).
					WillReturnRows(lockedSession(mock, domain.StatusCompleted, 10))
			},
			want: domain.ErrNotOpen,
		},
		{
			name: "already registered",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).
					WillReturnRows(lockedSession(mock, domain.StatusUpcoming, 10))
				mock.ExpectQuery(queryRegistrationExists).WithArgs(int64(7), "u-1").
					WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: domain.ErrAlreadyRegistered,
		},
		{
			name: "capacity reached",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).
					WillReturnRows(lockedSession(mock, domain.StatusLive, 2))
				mock.ExpectQuery(queryRegistrationExists).WithArgs(int64(7), "u-1").
					WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(queryCountRegistrations).WithArgs(int64(7)).
					WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))
			},
			want: domain.ErrSessionFull,
		},
		{
			name: "unique violation on insert",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(queryLockSession).WithArgs(int64(7)).
					WillReturnRows(lockedSession(mock, domain.StatusLive, 2))
				mock.ExpectQuery(queryRegistrationExists).WithArgs(int64(7), "u-1").
					WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(queryCountRegistrations).WithArgs(int64(7)).
					WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(queryInsertRegistration).
					WithArgs(int64(7), "u-1", "Asha", "asha@cu.ac.in", pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
			},
			want: domain.ErrAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repo := NewRegistrationRepository(mock)

			mock.ExpectBegin()
			tt.expect(mock)
			mock.ExpectRollback()

			s, err := repo.Register(context.Background(), newRegistration())
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
