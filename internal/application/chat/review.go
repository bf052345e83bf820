package chat

import (
	"context"
	"unicode/utf8"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/ai"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// ReviewService is the plain document-review path: one prompt, no pipeline.
type ReviewService struct {
	LLM          ai.Completer
	ContentLimit int
}

// Review summarizes a document and flags points worth a closer look.
func (s *ReviewService) Review(ctx context.Context, content string) (string, error) {
	limit := s.ContentLimit
	if limit <= 0 {
		limit = 2000
	}
	if len(content) > limit {
		for limit > 0 && !utf8.RuneStart(content[limit]) {
			limit--
		}
		content = content[:limit]
	}
	return s.LLM.Complete(ctx, prompt.Review(content))
}
