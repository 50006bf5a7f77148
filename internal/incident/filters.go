package incident

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"safety-ai/internal/llm"
)

// Filters are structured constraints extracted from a natural-language query.
// Zero values mean "no constraint".
type Filters struct {
	Material         string `json:"material,omitempty"`
	LocationContains string `json:"location_contains,omitempty"`
	FromYear         int    `json:"from_year,omitempty"`
	ToYear           int    `json:"to_year,omitempty"`
	HasInjuries      *bool  `json:"has_injuries,omitempty"`
	Severity         string `json:"severity,omitempty"`
}

// LanguageModel is the completion surface the filter parser needs.
type LanguageModel interface {
	Complete(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64) (string, error)
}

const filterSystemPrompt = "You are a filter extraction engine. Extract and return a JSON object " +
	"from the user's query with keys such as 'material', 'location_contains', " +
	"'from_year', 'to_year', 'has_injuries', and 'severity'. " +
	"Respond with JSON only. Do not include explanations or extra text.\n\n" +
	"Example:\n" +
	"Input: gas leaks in Texas with injuries after 2022\n" +
	"Output:\n" +
	"{\n" +
	"  \"material\": \"gas\",\n" +
	"  \"location_contains\": \"Texas\",\n" +
	"  \"has_injuries\": true,\n" +
	"  \"from_year\": 2022\n" +
	"}"

// ParseFilters asks the model to convert a natural query into Filters.
// Unparseable output degrades to empty filters: a bad extraction must never
// fail the request it was meant to narrow.
func ParseFilters(ctx context.Context, model LanguageModel, query string) Filters {
	messages := []llm.Message{
		{Role: "system", Content: filterSystemPrompt},
		{Role: "user", Content: query},
	}

	raw, err := model.Complete(ctx, messages, 300, 0.3)
	if err != nil {
		slog.Warn("filter parsing failed", "error", err)
		return Filters{}
	}

	var f Filters
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &f); err != nil {
		slog.Warn("filter parsing returned invalid JSON", "error", err, "raw", raw)
		return Filters{}
	}
	return f
}

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripCodeFence removes a surrounding markdown code fence, which chat models
// add around JSON even when told not to.
func StripCodeFence(s string) string {
	if m := codeFence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(s)
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Apply filters the record set. Text matches are case-insensitive substring
// tests; year bounds are matched against the first year-like token in the
// date field.
func (f Filters) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Material != "" && !containsFold(r.Material, f.Material) {
			continue
		}
		if f.LocationContains != "" && !containsFold(r.Location, f.LocationContains) {
			continue
		}
		if f.FromYear > 0 || f.ToYear > 0 {
			year, ok := extractYear(r.Date)
			if !ok {
				continue
			}
			if f.FromYear > 0 && year < f.FromYear {
				continue
			}
			if f.ToYear > 0 && year > f.ToYear {
				continue
			}
		}
		if f.HasInjuries != nil && hasInjuries(r.Casualties) != *f.HasInjuries {
			continue
		}
		if f.Severity != "" && !containsFold(r.Severity, strings.TrimSpace(f.Severity)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summary renders the active filters as a human-readable line.
func (f Filters) Summary() string {
	var parts []string
	if f.Material != "" {
		parts = append(parts, "material: "+f.Material)
	}
	if f.LocationContains != "" {
		parts = append(parts, "location includes: "+f.LocationContains)
	}
	if f.FromYear > 0 || f.ToYear > 0 {
		from, to := "any", "present"
		if f.FromYear > 0 {
			from = strconv.Itoa(f.FromYear)
		}
		if f.ToYear > 0 {
			to = strconv.Itoa(f.ToYear)
		}
		parts = append(parts, fmt.Sprintf("from %s to %s", from, to))
	}
	if f.HasInjuries != nil {
		if *f.HasInjuries {
			parts = append(parts, "with injuries")
		} else {
			parts = append(parts, "without injuries")
		}
	}
	if f.Severity != "" {
		parts = append(parts, "severity: "+f.Severity)
	}
	return strings.Join(parts, ", ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func extractYear(date string) (int, bool) {
	m := yearPattern.FindString(date)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

func hasInjuries(casualties string) bool {
	lower := strings.ToLower(casualties)
	if !strings.Contains(lower, "injur") {
		return false
	}
	for _, negation := range []string{"no injur", "no injuries", "none reported"} {
		if strings.Contains(lower, negation) {
			return false
		}
	}
	return true
}
