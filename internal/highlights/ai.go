package highlights

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"text/template"

	"github.com/uniconnect/ama-service/internal/domain"
)

var promptTmpl = template.Must(template.New("highlights").Parse(
	`You are summarising a student Ask-Me-Anything session for a university networking platform.

Session title: {{.Title}}
Session description: {{.Description}}

Reply with exactly three lines and nothing else:
Key insight: <one sentence, the most useful takeaway>
Action item: <one concrete thing a student should do next>
Resource: <one book, site or practice a student should use>
`))

// AISource спрашивает модель; при любой ошибке апстрима или кривом ответе
// недостающие поля берутся из правил.
type AISource struct {
	gen Generator
	log *slog.Logger
}

func NewAISource(gen Generator, log *slog.Logger) *AISource {
	if log == nil {
		log = slog.Default()
	}
	return &AISource{gen: gen, log: log}
}

func (s *AISource) Highlights(ctx context.Context, title, description string) (domain.Highlights, error) {
	fallback := Rules(title, description)

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, struct{ Title, Description string }{title, description}); err != nil {
		return fallback, nil
	}

	out, err := s.gen.Generate(ctx, buf.String())
	if err != nil {
		s.log.WarnContext(ctx, "ai highlights failed, using rules", slog.Any("err", err))
		return fallback, nil
	}

	h := parse(out)
	if h.KeyInsight == "" {
		h.KeyInsight = fallback.KeyInsight
	}
	if h.ActionItem == "" {
		h.ActionItem = fallback.ActionItem
	}
	if h.Resource == "" {
		h.Resource = fallback.Resource
	}
	return h, nil
}

func parse(out string) domain.Highlights {
	var h domain.Highlights
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.Trim(strings.TrimSpace(key), "*")) {
		case "key insight":
			h.KeyInsight = val
		case "action item":
			h.ActionItem = val
		case "resource":
			h.Resource = val
		}
	}
	return h
}
