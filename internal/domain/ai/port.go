package ai

import "context"

// Completer sends one rendered prompt to the language model and returns the
// raw reply text. Replies carry no guaranteed schema; callers parse
// defensively.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder produces embedding vectors for retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
