package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"safety-ai/internal/rag"
)

// ChatHandler handles HTTP requests for session-based chat.
type ChatHandler struct {
	engine Engine
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// ChatRequest is the HTTP request payload for chat. SessionID is optional;
// when absent the server assigns one and returns it in the response.
type ChatRequest struct {
	SessionID string   `json:"session_id,omitempty"`
	Message   string   `json:"message"`
	Documents []string `json:"documents,omitempty"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	resp, err := h.engine.Chat(ctx, rag.ChatRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
		Documents: req.Documents,
	})
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClearHandler handles HTTP requests to clear a chat session.
type ClearHandler struct {
	engine Engine
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(engine Engine) *ClearHandler {
	return &ClearHandler{engine: engine}
}

// ClearRequest is the HTTP request payload for clearing a session.
type ClearRequest struct {
	SessionID string `json:"session_id"`
}

// ClearResponse is the HTTP response payload for clearing a session.
type ClearResponse struct {
	SessionID string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}

// ServeHTTP handles HTTP requests to clear a session.
func (h *ClearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return
	}

	cleared := h.engine.ClearSession(req.SessionID)
	if !cleared {
		writeJSON(w, http.StatusNotFound, ClearResponse{SessionID: req.SessionID, Cleared: false})
		return
	}
	writeJSON(w, http.StatusOK, ClearResponse{SessionID: req.SessionID, Cleared: true})
}
