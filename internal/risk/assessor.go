// Package risk assesses the severity of a described incident using past
// incident context and the language model, with a keyword-rule fallback when
// the model is unavailable or returns garbage.
package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"safety-ai/internal/incident"
	"safety-ai/internal/llm"
)

// Assessment is a severity classification with its rationale.
type Assessment struct {
	Severity  string `json:"severity"`
	Rationale string `json:"rationale"`
}

// ContextProvider supplies retrieval context for an incident description.
type ContextProvider interface {
	RelevantContext(ctx context.Context, query string, k int) ([]string, error)
}

// LanguageModel is the completion surface the assessor needs.
type LanguageModel interface {
	Complete(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64) (string, error)
}

// Assessor classifies incident severity.
type Assessor struct {
	model     LanguageModel
	retriever ContextProvider
	logger    *slog.Logger
}

// NewAssessor creates an assessor.
func NewAssessor(model LanguageModel, retriever ContextProvider) *Assessor {
	return &Assessor{
		model:     model,
		retriever: retriever,
		logger:    slog.Default(),
	}
}

// Assess classifies the incident as Low, Medium, High, or Critical with a
// short rationale. Model failure, empty output, and invalid JSON all fall
// back to the keyword rules; the caller always gets an answer.
func (a *Assessor) Assess(ctx context.Context, description string) Assessment {
	var contextBlock string
	if a.retriever != nil {
		snippets, err := a.retriever.RelevantContext(ctx, description, 3)
		if err != nil {
			a.logger.Warn("failed to retrieve risk context", "error", err)
		} else {
			contextBlock = strings.Join(snippets, "\n")
		}
	}

	prompt := fmt.Sprintf(
		"Given the following incident description:\n\n%s\n\n"+
			"And past similar incidents:\n\n%s\n\n"+
			"Determine the severity level of this incident based on its potential harm. "+
			"Categorize it as: Low, Medium, High, or Critical. "+
			"Provide a short rationale explaining why you chose this severity. "+
			"Respond in JSON format with keys 'severity' and 'rationale'.",
		description, contextBlock,
	)

	raw, err := a.model.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, 300, 0.3)
	if err != nil {
		a.logger.Error("risk assessment model call failed", "error", err)
		return RuleBased(description)
	}
	if strings.TrimSpace(raw) == "" {
		a.logger.Error("risk assessment model returned empty response")
		return RuleBased(description)
	}

	var result Assessment
	if err := json.Unmarshal([]byte(incident.StripCodeFence(raw)), &result); err != nil {
		a.logger.Error("risk assessment returned invalid JSON", "error", err, "raw", raw)
		return RuleBased(description)
	}
	if result.Severity == "" {
		result.Severity = "Unknown"
	}
	if result.Rationale == "" {
		result.Rationale = "No explanation provided."
	}
	return result
}

// severityKeywords maps hazard keywords to severity, checked in order.
var severityKeywords = []struct {
	keyword  string
	severity string
}{
	{"explosion", "Critical"},
	{"fire", "High"},
	{"gas leak", "High"},
	{"chemical spill", "Medium"},
	{"equipment failure", "Medium"},
	{"minor injury", "Low"},
	{"property damage", "Medium"},
}

// RuleBased is the heuristic backup scoring used when the model is
// unavailable. First keyword match wins.
func RuleBased(description string) Assessment {
	lower := strings.ToLower(description)
	for _, rule := range severityKeywords {
		if strings.Contains(lower, rule.keyword) {
			return Assessment{
				Severity:  rule.severity,
				Rationale: fmt.Sprintf("Keyword '%s' detected, classified as %s risk.", rule.keyword, rule.severity),
			}
		}
	}
	return Assessment{Severity: "Low", Rationale: "No major hazard detected."}
}
