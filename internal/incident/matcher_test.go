package incident_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"safety-ai/internal/incident"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeEmbedder returns fixed unit vectors keyed by substring, so similarity
// scores in tests are exact.
type fakeEmbedder struct {
	byContains map[string][]float32
	fallback   []float32
	err        error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := f.fallback
		for substr, v := range f.byContains {
			if strings.Contains(text, substr) {
				vec = v
				break
			}
		}
		out[i] = vec
	}
	return out, nil
}

func testRecords() []incident.Record {
	return []incident.Record{
		{Number: "INC-001", Description: "gas leak near compressor station", Severity: "High"},
		{Number: "INC-002", Description: "minor corrosion found during inspection", Severity: "Low"},
	}
}

func testEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		byContains: map[string][]float32{
			"gas leak":  {1, 0},
			"corrosion": {0, 1},
		},
		fallback: []float32{0.6, 0.8},
	}
}

func TestNewMatcher(t *testing.T) {
	m, err := incident.NewMatcher(context.Background(), testRecords(), testEmbedder())
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}
	if len(m.Records()) != 2 {
		t.Errorf("Records() returned %d records, want 2", len(m.Records()))
	}
}

func TestNewMatcher_EmbedError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding service down")}
	if _, err := incident.NewMatcher(context.Background(), testRecords(), embedder); err == nil {
		t.Error("NewMatcher() expected error, got nil")
	}
}

func TestMatcher_Similar(t *testing.T) {
	m, err := incident.NewMatcher(context.Background(), testRecords(), testEmbedder())
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	tests := []struct {
		name        string
		query       string
		k           int
		threshold   float32
		wantNumbers []string
	}{
		{
			name:        "matching record ranks first with near-perfect score",
			query:       "gas leak at a station",
			k:           5,
			threshold:   0.4,
			wantNumbers: []string{"INC-001"},
		},
		{
			name:        "threshold excludes weak matches",
			query:       "corrosion report",
			k:           5,
			threshold:   0.9,
			wantNumbers: []string{"INC-002"},
		},
		{
			name:        "k truncates matches",
			query:       "anything else entirely",
			k:           1,
			threshold:   0.1,
			wantNumbers: []string{"INC-002"},
		},
		{
			name:        "defaults applied for non-positive k and threshold",
			query:       "gas leak",
			k:           0,
			threshold:   0,
			wantNumbers: []string{"INC-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := m.Similar(context.Background(), tt.query, tt.k, tt.threshold)
			if err != nil {
				t.Fatalf("Similar() error = %v", err)
			}
			if len(matches) != len(tt.wantNumbers) {
				t.Fatalf("Similar() returned %d matches, want %d", len(matches), len(tt.wantNumbers))
			}
			for i, want := range tt.wantNumbers {
				if matches[i].Record.Number != want {
					t.Errorf("match %d = %s, want %s", i, matches[i].Record.Number, want)
				}
			}
			for i := 1; i < len(matches); i++ {
				if matches[i].Score > matches[i-1].Score {
					t.Errorf("matches not in descending score order at %d", i)
				}
			}
		})
	}
}

func TestMatcher_Similar_SelfSimilarity(t *testing.T) {
	m, err := incident.NewMatcher(context.Background(), testRecords(), testEmbedder())
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	matches, err := m.Similar(context.Background(), "gas leak near compressor station", 1, 0.4)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Similar() returned %d matches, want 1", len(matches))
	}
	if matches[0].Score < 0.99 {
		t.Errorf("self-similarity score = %f, want >= 0.99", matches[0].Score)
	}
}

func TestMatcher_Similar_Empty(t *testing.T) {
	m, err := incident.NewMatcher(context.Background(), nil, testEmbedder())
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	matches, err := m.Similar(context.Background(), "gas leak", 5, 0.4)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if matches != nil {
		t.Errorf("Similar() on empty matcher = %v, want nil", matches)
	}
}

func TestLoadRecords(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		records, err := incident.LoadRecords(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("LoadRecords() error = %v", err)
		}
		if records != nil {
			t.Errorf("LoadRecords() = %v, want nil", records)
		}
	})

	t.Run("valid file parses report fields", func(t *testing.T) {
		content := `[{
			"Incident Number": "INC-042",
			"Date": "2023-05-17",
			"Location": "Midland, Texas",
			"Pipeline Operator": "Acme Pipelines",
			"Material Released": "Natural Gas",
			"Severity": "High",
			"Incident Description": "Pipeline rupture with gas release",
			"Response Actions": "Isolated the segment and evacuated the area",
			"Casualties & Injuries": "2 injuries reported",
			"PHMSA Guide Reference": "Guide 115"
		}]`
		path := filepath.Join(t.TempDir(), "incidents.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		records, err := incident.LoadRecords(path)
		if err != nil {
			t.Fatalf("LoadRecords() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("LoadRecords() returned %d records, want 1", len(records))
		}
		r := records[0]
		if r.Number != "INC-042" || r.Location != "Midland, Texas" || r.Material != "Natural Gas" {
			t.Errorf("record = %+v, fields not parsed from report keys", r)
		}
		if r.Casualties != "2 injuries reported" || r.GuideReference != "Guide 115" {
			t.Errorf("record = %+v, long-form keys not parsed", r)
		}
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := incident.LoadRecords(path); err == nil {
			t.Error("LoadRecords() expected error, got nil")
		}
	})
}

func TestMatcher_Similar_QueryEmbedError(t *testing.T) {
	embedder := testEmbedder()
	m, err := incident.NewMatcher(context.Background(), testRecords(), embedder)
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	embedder.err = fmt.Errorf("embedding service down")
	if _, err := m.Similar(context.Background(), "gas leak", 5, 0.4); err == nil {
		t.Error("Similar() expected error, got nil")
	}
}
