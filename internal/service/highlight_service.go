package service

import (
	"context"
	"log/slog"

	"github.com/uniconnect/ama-service/internal/domain"
	"github.com/uniconnect/ama-service/internal/highlights"
)

type HighlightCache interface {
	Get(ctx context.Context, sessionID int64) (domain.Highlights, bool, error)
	Set(ctx context.Context, sessionID int64, h domain.Highlights) error
}

type HighlightService struct {
	sessions SessionRepository
	source   highlights.Source
	cache    HighlightCache // может быть nil
	log      *slog.Logger
}

func NewHighlightService(sessions SessionRepository, source highlights.Source, cache HighlightCache, log *slog.Logger) *HighlightService {
	if log == nil {
		log = slog.Default()
	}
	return &HighlightService{sessions: sessions, source: source, cache: cache, log: log}
}

// ForSession: cache-aside; ошибки кэша только логируются.
func (s *HighlightService) ForSession(ctx context.Context, sessionID int64) (domain.Highlights, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Highlights{}, persistErr("Failed to fetch highlights", err)
	}

	if s.cache != nil {
		h, ok, err := s.cache.Get(ctx, sessionID)
		if err != nil {
			s.log.WarnContext(ctx, "highlights cache get failed", slog.Int64("session_id", sessionID), slog.Any("err", err))
		}
		if ok {
			return h, nil
		}
	}

	h, err := s.source.Highlights(ctx, sess.Title, sess.Description)
	if err != nil {
		return domain.Highlights{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sessionID, h); err != nil {
			s.log.WarnContext(ctx, "highlights cache set failed", slog.Int64("session_id", sessionID), slog.Any("err", err))
		}
	}
	return h, nil
}
