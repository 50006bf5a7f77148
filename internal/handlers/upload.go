package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// UploadHandler handles HTTP requests to attach a document to a session.
type UploadHandler struct {
	engine Engine
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(engine Engine) *UploadHandler {
	return &UploadHandler{engine: engine}
}

// UploadRequest is the HTTP request payload for uploads. Content is the
// extracted UTF-8 text of the file; binary extraction happens upstream.
type UploadRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
}

// UploadResponse is the HTTP response payload for uploads.
type UploadResponse struct {
	SessionID string `json:"session_id"`
	Indexed   bool   `json:"indexed"`
}

// ServeHTTP handles HTTP requests for uploads.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	indexed, err := h.engine.Upload(ctx, req.SessionID, req.Filename, []byte(req.Content))
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to process upload")
		return
	}
	if !indexed {
		writeJSON(w, http.StatusBadRequest, UploadResponse{SessionID: req.SessionID, Indexed: false})
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{SessionID: req.SessionID, Indexed: true})
}
