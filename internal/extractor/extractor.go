// Package extractor turns supported document files into ordered page text.
// It is the boundary to raw-format handling: callers get UTF-8 text or an
// error, never a partial result.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupported is returned for file extensions this extractor cannot read.
var ErrUnsupported = errors.New("unsupported file type")

// Page is one unit of extracted text. Number is nil when the source format
// has no page concept.
type Page struct {
	Number *int
	Text   string
}

// pageHeader matches the page markers written by upstream PDF conversion
// ("PAGE: 3" on its own line).
var pageHeader = regexp.MustCompile(`(?m)^PAGE:\s*(\d+)\s*$`)

// Supported reports whether the extractor can handle the file extension.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown":
		return true
	}
	return false
}

// ExtractFile reads and extracts the file at path.
func ExtractFile(path string) ([]Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Extract(filepath.Base(path), content)
}

// Extract extracts pages from raw file content. The extension of name selects
// the format. Unsupported extensions return ErrUnsupported with no pages.
func Extract(name string, content []byte) ([]Page, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return extractText(string(content)), nil
	case ".md", ".markdown":
		return []Page{{Text: markdownToText(content)}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

// extractText splits plain text on PAGE: headers when present; otherwise the
// whole file is a single page-less unit.
func extractText(text string) []Page {
	headers := pageHeader.FindAllStringSubmatchIndex(text, -1)
	if len(headers) == 0 {
		return []Page{{Text: text}}
	}

	var pages []Page
	for i, h := range headers {
		num, err := strconv.Atoi(text[h[2]:h[3]])
		if err != nil {
			continue
		}
		start := h[1]
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		n := num
		pages = append(pages, Page{Number: &n, Text: text[start:end]})
	}
	return pages
}
