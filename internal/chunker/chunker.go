package chunker

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultMaxLen  = 500 // Max runes per chunk (bounds embedding-model input)
	defaultOverlap = 100 // Runes shared by consecutive window sub-chunks
)

// Chunk is a bounded span of document text with provenance, the atomic unit
// of retrieval. ID is unique within a document. Page is nil for sources with
// no page concept (plain text); the id then carries the paragraph index.
type Chunk struct {
	ID           string
	Text         string
	DocumentName string
	Page         *int
}

// Page is one unit of extracted document text. Number is nil for formats
// without pages.
type Page struct {
	Number *int
	Text   string
}

// Chunker splits extracted document text into retrievable units.
type Chunker struct {
	maxLen  int
	overlap int
}

// New creates a chunker with the given limits. Non-positive values fall back
// to the defaults (window 500, overlap 100).
func New(maxLen, overlap int) *Chunker {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	if overlap <= 0 || overlap >= maxLen {
		overlap = defaultOverlap
	}
	return &Chunker{maxLen: maxLen, overlap: overlap}
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Chunk splits the pages of a document into chunks.
// Each page's text is split on blank-line paragraph boundaries. A paragraph at
// or under the max length becomes one chunk; a longer one is cut by a sliding
// window so consecutive sub-chunks share an overlap span, preserving local
// context across the cut. A page with no non-whitespace paragraphs yields no
// chunks and is not an error.
func (c *Chunker) Chunk(documentName string, pages []Page) []Chunk {
	var chunks []Chunk
	paragraphIndex := 0 // whole-document paragraph counter, provenance for page-less sources

	for _, page := range pages {
		counter := 0 // per-page running counter keeps ids unique within the document
		for _, para := range paragraphSplit.Split(page.Text, -1) {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}

			for _, text := range c.split(para) {
				var id string
				if page.Number != nil {
					id = fmt.Sprintf("p%d-c%d", *page.Number, counter)
				} else {
					id = fmt.Sprintf("t%d-c%d", paragraphIndex, counter)
				}
				chunks = append(chunks, Chunk{
					ID:           id,
					Text:         text,
					DocumentName: documentName,
					Page:         page.Number,
				})
				counter++
			}
			paragraphIndex++
		}
	}

	return chunks
}

// split cuts a paragraph into window-sized pieces. Sizes are measured in
// runes so multibyte text is never cut mid-character.
func (c *Chunker) split(para string) []string {
	runes := []rune(para)
	if len(runes) <= c.maxLen {
		return []string{para}
	}

	step := c.maxLen - c.overlap
	var parts []string
	for start := 0; ; start += step {
		end := start + c.maxLen
		if end >= len(runes) {
			parts = append(parts, string(runes[start:]))
			break
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
