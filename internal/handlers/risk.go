package handlers

import (
	"encoding/json"
	"net/http"
)

// RiskHandler handles HTTP requests for risk assessment.
type RiskHandler struct {
	assessor RiskAssessor
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(assessor RiskAssessor) *RiskHandler {
	return &RiskHandler{assessor: assessor}
}

// RiskRequest is the HTTP request payload for risk assessment.
type RiskRequest struct {
	Details string `json:"details"`
}

// RiskResponse is the HTTP response payload for risk assessment.
type RiskResponse struct {
	Severity  string `json:"severity"`
	Rationale string `json:"rationale"`
}

// ServeHTTP handles HTTP requests for risk assessment.
func (h *RiskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	var req RiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Details == "" {
		writeError(w, http.StatusBadRequest, "incident details required")
		return
	}

	assessment := h.assessor.Assess(ctx, req.Details)
	writeJSON(w, http.StatusOK, RiskResponse{
		Severity:  assessment.Severity,
		Rationale: assessment.Rationale,
	})
}
