package domain

import "github.com/uniconnect/ama-service/pkg/errs"

var (
	ErrSessionNotFound   = errs.New(errs.ErrNotFound, "Session not found")
	ErrInvalidSessionID  = errs.New(errs.ErrInvalidInput, "Invalid session id")
	ErrNotOpen           = errs.New(errs.ErrConflict, "Session is not open for registration")
	ErrAlreadyRegistered = errs.New(errs.ErrConflict, "User already registered for this session")
	ErrSessionFull       = errs.New(errs.ErrConflict, "Session is full")

	ErrEmptyMessage   = errs.New(errs.ErrInvalidInput, "Message cannot be empty")
	ErrMessageTooLong = errs.New(errs.ErrInvalidInput, "Message is too long")

	ErrGeneratorDisabled = errs.New(errs.ErrUpstream, "AI generation is not configured")
)
