package chunker_test

import (
	"strings"
	"testing"

	"safety-ai/internal/chunker"
)

func intPtr(n int) *int {
	return &n
}

func TestChunker_Chunk(t *testing.T) {
	c := chunker.New(500, 100)

	tests := []struct {
		name       string
		document   string
		pages      []chunker.Page
		wantCount  int
		wantIDs    []string
		wantChecks func(t *testing.T, chunks []chunker.Chunk)
	}{
		{
			name:     "short paragraph is one chunk",
			document: "guide.txt",
			pages: []chunker.Page{
				{Number: intPtr(1), Text: strings.Repeat("a", 200)},
			},
			wantCount: 1,
			wantIDs:   []string{"p1-c0"},
		},
		{
			name:     "long paragraph is windowed into three chunks",
			document: "guide.txt",
			pages: []chunker.Page{
				{Number: intPtr(2), Text: strings.Repeat("b", 1200)},
			},
			wantCount: 3,
			wantIDs:   []string{"p2-c0", "p2-c1", "p2-c2"},
			wantChecks: func(t *testing.T, chunks []chunker.Chunk) {
				for _, ch := range chunks {
					if got := len([]rune(ch.Text)); got > 500 {
						t.Errorf("chunk %s has %d runes, want <= 500", ch.ID, got)
					}
				}
				// Consecutive windows share a 100-rune overlap.
				first := []rune(chunks[0].Text)
				second := []rune(chunks[1].Text)
				if string(first[len(first)-100:]) != string(second[:100]) {
					t.Error("consecutive chunks do not share the overlap span")
				}
			},
		},
		{
			name:     "paragraphs split on blank lines",
			document: "notes.txt",
			pages: []chunker.Page{
				{Number: intPtr(1), Text: "first paragraph\n\nsecond paragraph\n \nthird paragraph"},
			},
			wantCount: 3,
			wantIDs:   []string{"p1-c0", "p1-c1", "p1-c2"},
		},
		{
			name:     "pageless source uses paragraph index ids",
			document: "plain.md",
			pages: []chunker.Page{
				{Number: nil, Text: "alpha\n\nbeta"},
			},
			wantCount: 2,
			wantIDs:   []string{"t0-c0", "t1-c1"},
			wantChecks: func(t *testing.T, chunks []chunker.Chunk) {
				for _, ch := range chunks {
					if ch.Page != nil {
						t.Errorf("chunk %s has page %d, want nil", ch.ID, *ch.Page)
					}
				}
			},
		},
		{
			name:     "whitespace-only page yields no chunks",
			document: "empty.txt",
			pages: []chunker.Page{
				{Number: intPtr(1), Text: "   \n\n\t\n"},
			},
			wantCount: 0,
		},
		{
			name:     "multiple pages keep ids unique",
			document: "multi.txt",
			pages: []chunker.Page{
				{Number: intPtr(1), Text: "page one text"},
				{Number: intPtr(2), Text: "page two text"},
			},
			wantCount: 2,
			wantIDs:   []string{"p1-c0", "p2-c0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(tt.document, tt.pages)

			if len(chunks) != tt.wantCount {
				t.Fatalf("Chunk() returned %d chunks, want %d", len(chunks), tt.wantCount)
			}
			for i, wantID := range tt.wantIDs {
				if chunks[i].ID != wantID {
					t.Errorf("chunk %d has id %q, want %q", i, chunks[i].ID, wantID)
				}
			}
			for _, ch := range chunks {
				if ch.DocumentName != tt.document {
					t.Errorf("chunk %s has document %q, want %q", ch.ID, ch.DocumentName, tt.document)
				}
			}
			if tt.wantChecks != nil {
				tt.wantChecks(t, chunks)
			}
		})
	}
}

func TestChunker_Chunk_MultibyteText(t *testing.T) {
	c := chunker.New(10, 3)

	// 25 multibyte runes force windowing; a byte-based cut would split runes.
	text := strings.Repeat("ä", 25)
	chunks := c.Chunk("utf8.txt", []chunker.Page{{Number: intPtr(1), Text: text}})

	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}
	for _, ch := range chunks {
		if strings.ContainsRune(ch.Text, '�') {
			t.Errorf("chunk %s contains a replacement character, rune was split", ch.ID)
		}
		if got := len([]rune(ch.Text)); got > 10 {
			t.Errorf("chunk %s has %d runes, want <= 10", ch.ID, got)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	c := chunker.New(0, 0)

	// Defaults: window 500, overlap 100, so 1200 runes become 3 chunks.
	chunks := c.Chunk("d.txt", []chunker.Page{{Number: intPtr(1), Text: strings.Repeat("x", 1200)}})
	if len(chunks) != 3 {
		t.Errorf("Chunk() with defaults returned %d chunks, want 3", len(chunks))
	}
}
