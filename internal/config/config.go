package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int

	DocsPath      string // directory of corpus documents
	IndexPath     string // persisted vector index file
	DBPath        string // SQLite chunk mapping
	IncidentsPath string // JSON incident records

	SessionTTL   time.Duration
	CacheTTL     time.Duration
	HistoryLimit int

	APIPort   string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env at the project root
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "all-mpnet-base-v2"),
		DocsPath:           getEnv("DOCS_PATH", "./data/docs"),
		IndexPath:          getEnv("INDEX_PATH", "./data/vector_store/documents.idx"),
		DBPath:             getEnv("DB_PATH", "./data/safety-ai.db"),
		IncidentsPath:      getEnv("INCIDENTS_PATH", "./data/incident_reports.json"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	// EMBEDDING_VECTOR_SIZE must match the output size of the embedding model.
	// A persisted index built with a different dimension cannot be loaded; the
	// only recovery is a full rebuild, so there is no default here.
	vectorSizeStr := os.Getenv("EMBEDDING_VECTOR_SIZE")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	cfg.SessionTTL, err = getDurationSeconds("SESSION_TTL_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL, err = getDurationSeconds("CACHE_TTL_SECONDS", 3600)
	if err != nil {
		return nil, err
	}

	historyStr := getEnv("HISTORY_LIMIT", "5")
	cfg.HistoryLimit, err = strconv.Atoi(historyStr)
	if err != nil || cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be a positive integer")
	}

	// Create the data directories up front so startup failures are config
	// failures, not mid-ingest surprises.
	for _, p := range []string{filepath.Dir(cfg.DBPath), filepath.Dir(cfg.IndexPath)} {
		if err := os.MkdirAll(p, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationSeconds parses an integer-seconds env var with a default.
func getDurationSeconds(key string, defaultSeconds int) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return time.Duration(defaultSeconds) * time.Second, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer: %q", key, s)
	}
	return time.Duration(n) * time.Second, nil
}
