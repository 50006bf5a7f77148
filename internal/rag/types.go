package rag

import "safety-ai/internal/incident"

// SearchRequest is a retrieval query against the corpus and, when a session
// id is supplied, that session's uploaded documents.
type SearchRequest struct {
	// Query is the natural-language search query.
	Query string `json:"query"`
	// K is the desired result count. Defaults to 5, capped at 20.
	K int `json:"k,omitempty"`
	// Documents restricts corpus results to these document names.
	Documents []string `json:"documents,omitempty"`
	// SessionID, when set, merges results from that session's uploads.
	SessionID string `json:"session_id,omitempty"`
}

// SearchResult is one retrieved context item, normalized at the orchestrator
// boundary: every consumer sees the same shape whether the text came from the
// indexed corpus or a session upload.
type SearchResult struct {
	// ChunkID is the chunk identifier, unique within its document.
	ChunkID string `json:"chunk_id"`
	// DocumentName is the source document.
	DocumentName string `json:"document_name"`
	// Page is the source page, nil for page-less sources.
	Page *int `json:"page,omitempty"`
	// Text is the chunk text.
	Text string `json:"text"`
	// Score is the cosine similarity to the query (higher is better).
	Score float32 `json:"score"`
	// FromUpload marks results that came from the session's uploaded
	// documents rather than the indexed corpus.
	FromUpload bool `json:"from_upload,omitempty"`
}

// ChatRequest is one conversational turn.
type ChatRequest struct {
	SessionID string   `json:"session_id"`
	Message   string   `json:"message"`
	Documents []string `json:"documents,omitempty"`
}

// ChatResponse is the answer to a chat turn with its supporting evidence.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
	// Sources are the distinct document names behind ReferencedChunks.
	Sources []string `json:"sources"`
	// Incidents are similar logged incidents, when an incident set is loaded.
	Incidents []incident.Match `json:"incidents,omitempty"`
	// ReferencedChunks are the context items the answer was grounded on.
	ReferencedChunks []SearchResult `json:"referenced_chunks"`
	// Cached reports whether the answer came from the response cache.
	Cached bool `json:"cached,omitempty"`
}
