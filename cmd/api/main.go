package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"safety-ai/internal/config"
	"safety-ai/internal/docstore"
	"safety-ai/internal/handlers"
	"safety-ai/internal/http"
	"safety-ai/internal/incident"
	"safety-ai/internal/index"
	"safety-ai/internal/ingest"
	"safety-ai/internal/llm"
	"safety-ai/internal/rag"
	"safety-ai/internal/respcache"
	"safety-ai/internal/risk"
	"safety-ai/internal/session"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize chunk mapping database
	db, err := docstore.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := docstore.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	ctx := context.Background()

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.EmbeddingVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.EmbeddingVectorSize)

	// Build or load the searchable corpus
	store := docstore.New(db, index.NewFlat())
	pipeline := ingest.NewPipeline(store, embedder)
	if err := ingest.BuildOrLoad(ctx, store, pipeline, cfg.IndexPath, cfg.DocsPath, cfg.EmbeddingVectorSize); err != nil {
		log.Fatalf("Failed to prepare corpus: %v", err)
	}

	// Load incident history; a missing file disables incident matching
	records, err := incident.LoadRecords(cfg.IncidentsPath)
	if err != nil {
		log.Fatalf("Failed to load incident records: %v", err)
	}
	var matcher *incident.Matcher
	if len(records) > 0 {
		matcher, err = incident.NewMatcher(ctx, records, embedder)
		if err != nil {
			log.Fatalf("Failed to embed incident records: %v", err)
		}
		slog.Info("Incident matcher ready", "records", len(records))
	} else {
		slog.Warn("No incident records loaded, incident matching disabled", "path", cfg.IncidentsPath)
	}

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	sessions := session.NewStore(cfg.SessionTTL, cfg.HistoryLimit)
	cache := respcache.New(cfg.CacheTTL)

	// The matcher is only handed over when present; a typed nil would defeat
	// the engine's nil check.
	var incidents rag.IncidentMatcher
	if matcher != nil {
		incidents = matcher
	}

	engine := rag.NewEngine(embedder, llmClient, store, sessions, cache, incidents)
	slog.Info("RAG engine initialized")

	assessor := risk.NewAssessor(llmClient, engine)

	// Create router with dependencies
	deps := &http.Deps{
		Engine:   engine,
		Assessor: assessor,
		Health: func() handlers.HealthStatus {
			incidentCount := 0
			if matcher != nil {
				incidentCount = len(matcher.Records())
			}
			return handlers.HealthStatus{
				Status:    "ok",
				Chunks:    store.Index().Len(),
				Incidents: incidentCount,
			}
		},
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// parseLogLevel maps a level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
