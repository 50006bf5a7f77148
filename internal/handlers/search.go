package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks safety-ai/internal/handlers Engine,RiskAssessor

import (
	"context"
	"encoding/json"
	"net/http"

	"safety-ai/internal/incident"
	"safety-ai/internal/rag"
	"safety-ai/internal/risk"
)

// Engine is the retrieval/chat core as seen by the HTTP layer.
// This interface is defined from the handlers' perspective (consumer-first).
type Engine interface {
	Search(ctx context.Context, req rag.SearchRequest) ([]rag.SearchResult, error)
	Answer(ctx context.Context, query string, results []rag.SearchResult) string
	Chat(ctx context.Context, req rag.ChatRequest) (rag.ChatResponse, error)
	Upload(ctx context.Context, sessionID, filename string, content []byte) (bool, error)
	ClearSession(sessionID string) bool
	SimilarIncidents(ctx context.Context, query string, k int, threshold float32) ([]incident.Match, error)
}

// RiskAssessor classifies incident severity.
type RiskAssessor interface {
	Assess(ctx context.Context, description string) risk.Assessment
}

// SearchHandler handles HTTP requests for document search.
type SearchHandler struct {
	engine Engine
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// SearchRequest is the HTTP request payload for search.
type SearchRequest struct {
	Query     string   `json:"query"`
	K         int      `json:"k,omitempty"`
	Documents []string `json:"documents,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
}

// SearchResponse is the HTTP response payload for search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Results []rag.SearchResult `json:"results"`
	Answer  string             `json:"answer"`
}

// ServeHTTP handles HTTP requests for search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.engine.Search(ctx, rag.SearchRequest{
		Query:     req.Query,
		K:         req.K,
		Documents: req.Documents,
		SessionID: req.SessionID,
	})
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to process search request")
		return
	}

	answer := h.engine.Answer(ctx, req.Query, results)

	if results == nil {
		results = []rag.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   req.Query,
		Results: results,
		Answer:  answer,
	})
}
