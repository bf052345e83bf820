package chat

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/ai"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/retrieval"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// QAService answers questions grounded in the regulation corpus: embed the
// question, retrieve the top-k chunks, answer with citations.
type QAService struct {
	LLM      ai.Completer
	Embedder ai.Embedder
	Store    retrieval.Store
	TopK     int
}

// Answer returns the grounded reply and the chunks it was grounded on.
func (s *QAService) Answer(ctx context.Context, question string) (string, []retrieval.Chunk, error) {
	k := s.TopK
	if k <= 0 {
		k = 3
	}

	emb, err := s.Embedder.Embed(ctx, question)
	if err != nil {
		return "", nil, fmt.Errorf("embed question: %w", err)
	}
	chunks, err := s.Store.Search(ctx, emb, k)
	if err != nil {
		return "", nil, fmt.Errorf("search corpus: %w", err)
	}

	reply, err := s.LLM.Complete(ctx, prompt.Answer(question, chunks))
	if err != nil {
		return "", chunks, err
	}
	return reply, chunks, nil
}
