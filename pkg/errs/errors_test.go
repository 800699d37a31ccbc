package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniconnect/ama-service/pkg/errs"
)

func TestToHTTP(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", errs.New(errs.ErrInvalidInput, "bad"), http.StatusBadRequest},
		{"not found", errs.New(errs.ErrNotFound, "session not found"), http.StatusNotFound},
		{"conflict", errs.New(errs.ErrConflict, "session is full"), http.StatusConflict},
		{"quota", errs.Wrap(errs.ErrUpstreamQuota, "quota", errors.New("429")), http.StatusTooManyRequests},
		{"auth", errs.New(errs.ErrUpstreamAuth, "key"), http.StatusInternalServerError},
		{"persistence", errs.Wrap(errs.ErrPersistence, "insert", errors.New("boom")), http.StatusInternalServerError},
		{"unavailable", errs.ErrUnavailable, http.StatusServiceUnavailable},
		{"plain", errors.New("x"), http.StatusInternalServerError},
		{"wrapped twice", fmt.Errorf("svc: %w", errs.New(errs.ErrNotFound, "nope")), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.ToHTTP(tc.err))
		})
	}
}

func TestError_UnwrapKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.Wrap(errs.ErrPersistence, "failed to save message", cause)

	require.ErrorIs(t, err, errs.ErrPersistence)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save message: connection reset", err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "session is full", errs.Message(fmt.Errorf("register: %w", errs.New(errs.ErrConflict, "session is full"))))
	assert.Equal(t, "not found", errs.Message(errs.ErrNotFound))
	assert.Equal(t, "internal server error", errs.Message(errors.New("pq: secret detail")))
}
