package errs

import (
	"errors"
	"net/http"
)

// Виды ошибок. Конкретные ошибки домена оборачивают один из них.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	ErrUpstream      = errors.New("upstream error")
	ErrUpstreamAuth  = errors.New("upstream auth error")
	ErrUpstreamQuota = errors.New("upstream quota exceeded")

	ErrPersistence = errors.New("persistence error")
	ErrUnavailable = errors.New("service unavailable")
)

// Error несёт публичное сообщение, вид ошибки и исходную причину.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind error, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Message достаёт сообщение, которое можно отдать клиенту.
// Для ошибок без *Error возвращает общий текст, чтобы не светить внутренности.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrUnavailable):
		return err.Error()
	}
	return "internal server error"
}

func ToHTTP(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstreamQuota):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		// ErrUpstream, ErrUpstreamAuth, ErrPersistence и всё неизвестное
		return http.StatusInternalServerError
	}
}
