package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine_deps.go -package=mocks safety-ai/internal/rag Embedder,LanguageModel,DocumentSearcher,IncidentMatcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"safety-ai/internal/chunker"
	"safety-ai/internal/docstore"
	"safety-ai/internal/extractor"
	"safety-ai/internal/incident"
	"safety-ai/internal/llm"
	"safety-ai/internal/respcache"
	"safety-ai/internal/session"
)

const (
	defaultK   = 5
	maxK       = 20
	uploadK    = 3 // uploads are a small corpus; top 3 is plenty
	overfetch  = 3 // corpus candidates fetched per requested result, headroom for filtering
	chatK      = 3
	incidentK  = 3
	maxTokens  = 300
	chatTemp   = 0.5

	systemPrompt = "You are a safety information assistant. Answer the query based solely on the provided context. " +
		"Do not use any external sources. Ensure that your response aligns with the given context."

	// noContextAnswer is returned without invoking the model when retrieval
	// comes back empty; answering from nothing invites hallucination.
	noContextAnswer = "I couldn't find any relevant information in the safety documents to answer this question."

	// providerFailureAnswer is the fixed fallback for a failed model call.
	providerFailureAnswer = "Sorry, I encountered an error while processing your request."
)

// Embedder produces unit-norm embedding vectors for texts.
// This interface is defined from the engine's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LanguageModel generates text from an ordered message sequence.
type LanguageModel interface {
	Complete(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64) (string, error)
}

// DocumentSearcher is the corpus-wide document store search surface.
type DocumentSearcher interface {
	Search(ctx context.Context, query []float32, k int) ([]docstore.Result, error)
}

// IncidentMatcher finds logged incidents similar to a query.
type IncidentMatcher interface {
	Similar(ctx context.Context, query string, k int, threshold float32) ([]incident.Match, error)
}

// Engine is the search orchestrator: it embeds queries once, fans out to the
// corpus store and the caller's session upload store, merges and filters
// results, and drives the chat flow with session memory and the response
// cache.
type Engine struct {
	embedder  Embedder
	model     LanguageModel
	docs      DocumentSearcher
	sessions  *session.Store
	cache     *respcache.Cache
	incidents IncidentMatcher
	chunker   *chunker.Chunker
	logger    *slog.Logger
}

// NewEngine creates the orchestrator. incidents may be nil when no incident
// set is loaded.
func NewEngine(
	embedder Embedder,
	model LanguageModel,
	docs DocumentSearcher,
	sessions *session.Store,
	cache *respcache.Cache,
	incidents IncidentMatcher,
) *Engine {
	return &Engine{
		embedder:  embedder,
		model:     model,
		docs:      docs,
		sessions:  sessions,
		cache:     cache,
		incidents: incidents,
		chunker:   chunker.New(0, 0),
		logger:    slog.Default(),
	}
}

// Search retrieves up to K chunks for the query. Corpus results are
// overfetched to leave headroom for the document-name filter, then truncated
// to K in descending similarity. Upload results are appended, never re-ranked
// against the corpus: a user who uploads a file expects it consulted
// regardless of its relative score.
func (e *Engine) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, &ValidationError{Field: "query", Message: "cannot be empty"}
	}

	k := req.K
	if k <= 0 {
		k = defaultK
	}
	if k > maxK {
		k = maxK
	}

	vecs, err := e.embedder.EmbedTexts(ctx, []string{req.Query})
	if err != nil {
		return nil, ExternalError(err, "failed to embed query")
	}
	queryVec := vecs[0]

	results, err := e.searchCorpus(ctx, queryVec, k, req.Documents)
	if err != nil {
		return nil, err
	}

	if req.SessionID != "" && e.sessions.HasUploads(req.SessionID) {
		uploadResults, err := e.sessions.SearchUploads(req.SessionID, queryVec, uploadK)
		if err != nil {
			e.logger.ErrorContext(ctx, "upload search failed", "session_id", req.SessionID, "error", err)
		} else {
			for _, ur := range uploadResults {
				results = append(results, SearchResult{
					ChunkID:      ur.Chunk.ID,
					DocumentName: ur.Chunk.DocumentName,
					Page:         ur.Chunk.Page,
					Text:         ur.Chunk.Text,
					Score:        ur.Score,
					FromUpload:   true,
				})
			}
		}
	}

	e.logger.InfoContext(ctx, "search completed", "query_length", len(req.Query), "k", k, "results", len(results))
	return results, nil
}

// searchCorpus queries the document store with overfetch and applies the
// document-name allow-list.
func (e *Engine) searchCorpus(ctx context.Context, queryVec []float32, k int, allowDocs []string) ([]SearchResult, error) {
	hits, err := e.docs.Search(ctx, queryVec, k*overfetch)
	if err != nil {
		return nil, WrapError(err, "document store search failed")
	}

	var allowed map[string]bool
	if len(allowDocs) > 0 {
		allowed = make(map[string]bool, len(allowDocs))
		for _, name := range allowDocs {
			allowed[name] = true
		}
	}

	results := make([]SearchResult, 0, k)
	for _, hit := range hits {
		if allowed != nil && !allowed[hit.DocumentName] {
			continue
		}
		results = append(results, SearchResult{
			ChunkID:      hit.ChunkID,
			DocumentName: hit.DocumentName,
			Page:         hit.Page,
			Text:         hit.Text,
			Score:        hit.Score,
		})
		if len(results) == k {
			break
		}
	}
	return results, nil
}

// Chat answers one conversational turn: retrieve context, consult the
// response cache, call the model, and record both turns in session memory.
// A provider failure becomes a fixed fallback answer, never an error to the
// caller; there is no retry.
func (e *Engine) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return ChatResponse{}, &ValidationError{Field: "message", Message: "cannot be empty"}
	}
	if req.SessionID == "" {
		return ChatResponse{}, &ValidationError{Field: "session_id", Message: "cannot be empty"}
	}

	results, err := e.Search(ctx, SearchRequest{
		Query:     req.Message,
		K:         chatK,
		Documents: req.Documents,
		SessionID: req.SessionID,
	})
	if err != nil {
		return ChatResponse{}, err
	}

	var matches []incident.Match
	if e.incidents != nil {
		matches, err = e.incidents.Similar(ctx, req.Message, incidentK, 0)
		if err != nil {
			e.logger.ErrorContext(ctx, "incident matching failed", "error", err)
			matches = nil // incidents are supporting evidence, not required
		}
	}

	resp := ChatResponse{
		SessionID:        req.SessionID,
		ReferencedChunks: results,
		Incidents:        matches,
		Sources:          sourceNames(results),
	}

	if len(results) == 0 {
		resp.Answer = noContextAnswer
		e.sessions.AppendTurn(req.SessionID, "user", req.Message)
		e.sessions.AppendTurn(req.SessionID, "assistant", resp.Answer)
		return resp, nil
	}

	contextItems := formatContext(results)
	history := e.sessions.History(req.SessionID)

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: "Relevant safety information:\n" + strings.Join(contextItems, "\n\n"),
	})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	key := respcache.Key(req.Message, contextItems)
	answer, cached, err := e.cache.GetOrCompute(key, func() (string, error) {
		return e.model.Complete(ctx, messages, maxTokens, chatTemp)
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "model call failed", "error", err)
		answer = providerFailureAnswer
	}

	resp.Answer = answer
	resp.Cached = cached
	e.sessions.AppendTurn(req.SessionID, "user", req.Message)
	e.sessions.AppendTurn(req.SessionID, "assistant", answer)

	e.logger.InfoContext(ctx, "chat completed",
		"session_id", req.SessionID,
		"chunks_used", len(results),
		"incidents", len(matches),
		"cached", cached,
	)
	return resp, nil
}

// Upload extracts, chunks, and embeds a user-supplied document into the
// session's ephemeral store. Unsupported file types are rejected whole: the
// session's upload state is untouched on any failure.
func (e *Engine) Upload(ctx context.Context, sessionID, filename string, content []byte) (bool, error) {
	if sessionID == "" {
		return false, &ValidationError{Field: "session_id", Message: "cannot be empty"}
	}
	if !extractor.Supported(filename) {
		e.logger.WarnContext(ctx, "rejected unsupported upload", "filename", filename)
		return false, nil
	}

	pages, err := extractor.Extract(filename, content)
	if err != nil {
		return false, WrapError(err, "extraction failed")
	}

	chunkerPages := make([]chunker.Page, len(pages))
	for i, p := range pages {
		chunkerPages[i] = chunker.Page{Number: p.Number, Text: p.Text}
	}
	chunks := e.chunker.Chunk(filename, chunkerPages)
	if len(chunks) == 0 {
		// Nothing indexable is not an error; the upload just adds nothing.
		return true, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return false, ExternalError(err, "failed to embed upload")
	}

	if err := e.sessions.AddUpload(sessionID, chunks, vectors); err != nil {
		return false, WrapError(err, "failed to store upload")
	}

	e.logger.InfoContext(ctx, "upload indexed", "session_id", sessionID, "filename", filename, "chunks", len(chunks))
	return true, nil
}

// ClearSession drops the session's chat history and upload state in one
// operation. Returns false when no live session existed.
func (e *Engine) ClearSession(sessionID string) bool {
	return e.sessions.Clear(sessionID)
}

// SimilarIncidents returns incidents similar to the query. k and threshold
// fall back to the matcher defaults when non-positive.
func (e *Engine) SimilarIncidents(ctx context.Context, query string, k int, threshold float32) ([]incident.Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Message: "cannot be empty"}
	}
	if e.incidents == nil {
		return nil, nil
	}
	return e.incidents.Similar(ctx, query, k, threshold)
}

// Answer generates an answer for a one-shot query from already-retrieved
// results, without touching session memory. Shares the response cache and the
// provider-failure fallback with Chat.
func (e *Engine) Answer(ctx context.Context, query string, results []SearchResult) string {
	if len(results) == 0 {
		return noContextAnswer
	}

	contextItems := formatContext(results)
	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "system", Content: "Relevant safety information:\n" + strings.Join(contextItems, "\n\n")},
		{Role: "user", Content: query},
	}

	key := respcache.Key(query, contextItems)
	answer, _, err := e.cache.GetOrCompute(key, func() (string, error) {
		return e.model.Complete(ctx, messages, maxTokens, chatTemp)
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "model call failed", "error", err)
		return providerFailureAnswer
	}
	return answer
}

// RelevantContext returns the texts of the top-k corpus chunks for a query.
// Used by the risk assessor, which needs context but not provenance.
func (e *Engine) RelevantContext(ctx context.Context, query string, k int) ([]string, error) {
	results, err := e.Search(ctx, SearchRequest{Query: query, K: k})
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return texts, nil
}

// formatContext renders results as context items with provenance, the shape
// the model is prompted to cite.
func formatContext(results []SearchResult) []string {
	items := make([]string, len(results))
	for i, r := range results {
		page := "Unknown"
		if r.Page != nil {
			page = fmt.Sprintf("%d", *r.Page)
		}
		items[i] = fmt.Sprintf("(Document: %s, Page: %s)\n%s", r.DocumentName, page, r.Text)
	}
	return items
}

// sourceNames returns the distinct document names in result order.
func sourceNames(results []SearchResult) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(results))
	for _, r := range results {
		if !seen[r.DocumentName] {
			seen[r.DocumentName] = true
			names = append(names, r.DocumentName)
		}
	}
	return names
}
