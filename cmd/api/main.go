package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalyses "github.com/bryanwahyu/automaton-compliance/internal/application/analyses"
	appchat "github.com/bryanwahyu/automaton-compliance/internal/application/chat"
	"github.com/bryanwahyu/automaton-compliance/internal/application/pipeline"
	"github.com/bryanwahyu/automaton-compliance/internal/config"
	openaiinfra "github.com/bryanwahyu/automaton-compliance/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/automaton-compliance/internal/infra/db/mysql"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/automaton-compliance/internal/infra/storage"
	pgvstore "github.com/bryanwahyu/automaton-compliance/internal/infra/vectorstore/postgres"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/websearch/tavily"
	"github.com/bryanwahyu/automaton-compliance/internal/middleware"
)

// text-embedding-3-small dimension; must match the indexed corpus
const embeddingDim = 1536

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect MySQL (analysis history)
	db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql connect error: %v", err)
	}
	defer db.Close()
	repo := mysqlp.NewAnalysisRepository(db)

	// connect pgvector (regulation corpus)
	vectors, err := pgvstore.Connect(ctx, cfg.PostgresDSN(), embeddingDim)
	if err != nil {
		log.Fatalf("vector store connect error: %v", err)
	}
	defer vectors.Close()
	if err := vectors.EnsureSchema(ctx); err != nil {
		log.Fatalf("vector store schema error: %v", err)
	}
	if n, err := vectors.Count(ctx); err == nil && n == 0 {
		log.Println("warning: corpus index is empty, run cmd/indexer to build it")
	}

	// init minio (report archive)
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init model client
	llm := openaiinfra.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.EmbedModel)

	// init pipeline; a nil Tavily client keeps the web-search stage skipped
	pipe := &pipeline.Service{
		LLM:              llm,
		Search:           tavily.New(cfg.Tavily.APIKey),
		Clock:            pipeline.SystemClock{},
		ContentLimit:     cfg.Pipeline.ContentLimit,
		MaxSearchResults: cfg.Pipeline.MaxSearchResults,
		SearchDomains:    cfg.Pipeline.SearchDomains,
	}

	analysesSvc := appanalyses.NewService(pipe, repo, store)
	chatRouter := appchat.NewRouter(llm)
	qaSvc := &appchat.QAService{LLM: llm, Embedder: llm, Store: vectors, TopK: cfg.Pipeline.TopK}
	reviewSvc := &appchat.ReviewService{LLM: llm, ContentLimit: cfg.Pipeline.ContentLimit}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(10, 1))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"mysql": &middleware.DatabaseHealthChecker{DB: db},
		"vector_store": middleware.HealthCheckerFunc(func(ctx context.Context) error {
			_, err := vectors.Count(ctx)
			return err
		}),
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(analysesSvc, chatRouter, qaSvc, reviewSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// chat can run the full pipeline inline, which is several model calls
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
