// Package highlights строит короткие выжимки сессии: по правилам или через модель.
package highlights

import (
	"context"

	"github.com/uniconnect/ama-service/internal/domain"
)

// Source не зависит от HTTP и хранилища: на вход только текст сессии.
type Source interface {
	Highlights(ctx context.Context, title, description string) (domain.Highlights, error)
}

// Generator: текстовая модель (см. gemini.Client).
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
