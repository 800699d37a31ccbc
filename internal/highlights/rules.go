package highlights

import (
	"context"
	"strings"

	"github.com/uniconnect/ama-service/internal/domain"
)

type rule struct {
	keywords   []string
	highlights domain.Highlights
}

var rules = []rule{
	{
		keywords: []string{"pm", "product manager"},
		highlights: domain.Highlights{
			KeyInsight: "Focus on user impact metrics rather than just technical skills when applying for PM roles",
			ActionItem: "Build 2-3 case studies showing end-to-end product thinking and user research",
			Resource:   `Recommended: "Inspired" by Marty Cagan for PM fundamentals`,
		},
	},
	{
		keywords: []string{"google", "interview"},
		highlights: domain.Highlights{
			KeyInsight: "Google values problem-solving ability and system design thinking over memorized solutions",
			ActionItem: "Practice system design problems daily and focus on scalability and trade-offs",
			Resource:   `Use "System Design Primer" and practice on platforms like LeetCode`,
		},
	},
	{
		keywords: []string{"data science", "ml"},
		highlights: domain.Highlights{
			KeyInsight: "Real-world projects and research experience are more valuable than just theoretical knowledge",
			ActionItem: "Build a portfolio with 3-4 end-to-end ML projects and publish findings",
			Resource:   "Focus on Kaggle competitions and open-source contributions",
		},
	},
}

var defaultHighlights = domain.Highlights{
	KeyInsight: "Success in tech requires both technical skills and strong communication abilities",
	ActionItem: "Build a portfolio showcasing your best work and practice explaining complex concepts",
	Resource:   "Network actively and seek mentorship from industry professionals",
}

// Rules чистая функция. Первое сработавшее правило по подстроке в title+description.
func Rules(title, description string) domain.Highlights {
	text := strings.ToLower(title + " " + description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.highlights
			}
		}
	}
	return defaultHighlights
}

type RuleSource struct{}

func (RuleSource) Highlights(_ context.Context, title, description string) (domain.Highlights, error) {
	return Rules(title, description), nil
}
