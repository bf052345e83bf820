package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/bryanwahyu/automaton-compliance/internal/config"
	openaiinfra "github.com/bryanwahyu/automaton-compliance/internal/infra/ai/openai"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ingestion"
	pgvstore "github.com/bryanwahyu/automaton-compliance/internal/infra/vectorstore/postgres"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/retrieval"
)

const embeddingDim = 1536

// embedBatchSize bounds one embeddings request; the API rejects huge batches.
const embedBatchSize = 100

func main() {
	var (
		corpusDir  = flag.String("corpus", "./corpus", "directory of .txt/.md/.pdf regulation documents")
		configPath = flag.String("config", "config.yaml", "path to config file")
	)
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *configPath == "config.yaml" {
		*configPath = v
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	store, err := pgvstore.Connect(ctx, cfg.PostgresDSN(), embeddingDim)
	if err != nil {
		log.Fatalf("vector store connect error: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("vector store schema error: %v", err)
	}

	llm := openaiinfra.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.EmbedModel)

	files, err := ingestion.ListCorpusFiles(*corpusDir)
	if err != nil {
		log.Fatalf("corpus walk error: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("no corpus documents found under %s", *corpusDir)
	}

	// collect chunks from all documents first, then rebuild atomically-ish
	var chunks []retrieval.Chunk
	for _, f := range files {
		text, err := ingestion.ExtractText(f)
		if err != nil {
			if errors.Is(err, ingestion.ErrUnsupportedFileType) {
				continue
			}
			log.Printf("skip %s: %v", f, err)
			continue
		}
		parts := ingestion.ChunkText(text, cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
		for i, p := range parts {
			// Page is the chunk ordinal within the file, used in citations
			chunks = append(chunks, retrieval.Chunk{Content: p, Source: filepath.Base(f), Page: i + 1})
		}
		log.Printf("chunked %s: %d chunks", filepath.Base(f), len(parts))
	}
	if len(chunks) == 0 {
		log.Fatal("corpus produced no chunks")
	}

	if err := store.Reset(ctx); err != nil {
		log.Fatalf("index reset error: %v", err)
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}
		embeddings, err := llm.EmbedBatch(ctx, texts)
		if err != nil {
			log.Fatalf("embed batch error: %v", err)
		}
		for i, c := range batch {
			if err := store.Insert(ctx, c, embeddings[i]); err != nil {
				log.Fatalf("index insert error: %v", err)
			}
		}
		log.Printf("indexed %d/%d chunks", end, len(chunks))
	}

	n, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("index count error: %v", err)
	}
	log.Printf("corpus index rebuilt: %d chunks from %d files", n, len(files))
}
