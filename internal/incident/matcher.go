// Package incident matches logged pipeline-safety incidents against natural
// language queries by embedding similarity, and applies structured filters
// parsed from free-form questions.
package incident

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

const (
	// DefaultThreshold is the minimum similarity for a match.
	DefaultThreshold = 0.4
	// DefaultK is the number of matches returned when the caller passes 0.
	DefaultK = 5
)

// Record is one incident report. The set is loaded and embedded once per
// process; records are immutable after load.
type Record struct {
	Number          string `json:"Incident Number"`
	Date            string `json:"Date"`
	Location        string `json:"Location"`
	Operator        string `json:"Pipeline Operator"`
	Material        string `json:"Material Released"`
	Severity        string `json:"Severity"`
	Description     string `json:"Incident Description"`
	ResponseActions string `json:"Response Actions"`
	Casualties      string `json:"Casualties & Injuries"`
	GuideReference  string `json:"PHMSA Guide Reference"`
}

// Match is a record annotated with its similarity score.
type Match struct {
	Record Record  `json:"record"`
	Score  float32 `json:"score"`
}

// Embedder produces unit-norm embedding vectors for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Matcher holds the pre-embedded incident set. The set is small enough that a
// brute-force scan beats the overhead of an index structure.
type Matcher struct {
	records    []Record
	embeddings [][]float32
	embedder   Embedder
	logger     *slog.Logger
}

// LoadRecords reads incident records from a JSON file. A missing file is not
// an error: the matcher just has nothing to match.
func LoadRecords(path string) ([]Record, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("incident report file not found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read incident records: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("failed to parse incident records: %w", err)
	}
	return records, nil
}

// NewMatcher embeds the incident set once and returns a matcher.
func NewMatcher(ctx context.Context, records []Record, embedder Embedder) (*Matcher, error) {
	m := &Matcher{
		records:  records,
		embedder: embedder,
		logger:   slog.Default(),
	}
	if len(records) == 0 {
		return m, nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = fmt.Sprintf("Incident %s: %s %s", r.Number, r.Description, r.ResponseActions)
	}

	m.logger.Info("embedding incidents", "count", len(texts))
	embeddings, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed incidents: %w", err)
	}
	m.embeddings = embeddings
	return m, nil
}

// Records returns the loaded incident set.
func (m *Matcher) Records() []Record {
	return m.records
}

// Similar returns up to k incidents whose descriptions score at or above
// threshold against the query, ordered by descending similarity. k <= 0 and
// threshold <= 0 fall back to the defaults. No matches is not an error.
func (m *Matcher) Similar(ctx context.Context, query string, k int, threshold float32) ([]Match, error) {
	if len(m.embeddings) == 0 {
		m.logger.Warn("incident embeddings not initialized")
		return nil, nil
	}
	if k <= 0 {
		k = DefaultK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	vecs, err := m.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec := vecs[0]

	matches := make([]Match, 0, len(m.records))
	for i, emb := range m.embeddings {
		score := dot(emb, queryVec)
		if score >= threshold {
			matches = append(matches, Match{Record: m.records[i], Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
