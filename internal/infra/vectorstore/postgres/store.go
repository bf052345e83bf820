package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/retrieval"
)

// Store is the pgvector-backed vector index over the regulation corpus.
type Store struct {
	db  *sql.DB
	dim int
}

var (
	_ retrieval.Store   = (*Store)(nil)
	_ retrieval.Indexer = (*Store)(nil)
)

// Connect opens the vector-store database and verifies connectivity.
func Connect(ctx context.Context, dsn string, dim int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return &Store{db: db, dim: dim}, nil
}

// EnsureSchema creates the extension and chunk table when missing. Replaces
// the load-or-rebuild check of a file-backed index: a missing table is the
// rebuild trigger.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	q := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS corpus_chunks (
  id BIGSERIAL PRIMARY KEY,
  source TEXT NOT NULL,
  page INT NOT NULL DEFAULT 0,
  content TEXT NOT NULL,
  embedding vector(%d) NOT NULL
)`, s.dim)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create corpus_chunks: %w", err)
	}
	return nil
}

// Reset drops all indexed chunks before a rebuild.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `TRUNCATE corpus_chunks`)
	return err
}

// Insert adds one chunk with its embedding.
func (s *Store) Insert(ctx context.Context, chunk retrieval.Chunk, embedding []float32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO corpus_chunks (source, page, content, embedding) VALUES ($1, $2, $3, $4)`,
		chunk.Source, chunk.Page, chunk.Content, pgvector.NewVector(embedding))
	return err
}

// Search returns the top-k chunks nearest to the query embedding.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]retrieval.Chunk, error) {
	if k <= 0 {
		k = 3
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, page, content FROM corpus_chunks ORDER BY embedding <-> $1 LIMIT $2`,
		pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	var out []retrieval.Chunk
	for rows.Next() {
		var c retrieval.Chunk
		if err := rows.Scan(&c.Source, &c.Page, &c.Content); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count reports how many chunks are indexed; zero means the index needs a
// rebuild via the indexer command.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corpus_chunks`).Scan(&n)
	return n, err
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
