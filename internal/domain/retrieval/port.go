package retrieval

import "context"

// Chunk is one indexed document fragment with its provenance.
type Chunk struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Page    int    `json:"page"`
}

// Store port for similarity search over the vector index
type Store interface {
	Search(ctx context.Context, embedding []float32, k int) ([]Chunk, error)
}

// Indexer port for (re)building the vector index
type Indexer interface {
	Insert(ctx context.Context, chunk Chunk, embedding []float32) error
	Reset(ctx context.Context) error
}
