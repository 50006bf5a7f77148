package handlers

import (
	"encoding/json"
	"net/http"

	"safety-ai/internal/incident"
)

// IncidentsHandler handles HTTP requests for similar-incident lookups.
type IncidentsHandler struct {
	engine Engine
}

// NewIncidentsHandler creates a new IncidentsHandler.
func NewIncidentsHandler(engine Engine) *IncidentsHandler {
	return &IncidentsHandler{engine: engine}
}

// IncidentsRequest is the HTTP request payload for similar-incident lookups.
type IncidentsRequest struct {
	Query     string   `json:"query"`
	K         int      `json:"k,omitempty"`
	Threshold *float32 `json:"threshold,omitempty"`
}

// IncidentsResponse is the HTTP response payload for similar-incident lookups.
type IncidentsResponse struct {
	Query     string           `json:"query"`
	Incidents []incident.Match `json:"incidents"`
}

// ServeHTTP handles HTTP requests for similar-incident lookups.
func (h *IncidentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req IncidentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query required")
		return
	}
	threshold := float32(incident.DefaultThreshold)
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	matches, err := h.engine.SimilarIncidents(ctx, req.Query, req.K, threshold)
	if err != nil {
		handleEngineError(w, ctx, err, "Failed to look up similar incidents")
		return
	}

	if matches == nil {
		matches = []incident.Match{}
	}
	writeJSON(w, http.StatusOK, IncidentsResponse{Query: req.Query, Incidents: matches})
}
