package extractor

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// markdownToText parses markdown and flattens it to plain text, one blank
// line between block elements so the chunker sees paragraph boundaries.
// Formatting (emphasis, links, code fences) is dropped; the words are kept.
func markdownToText(content []byte) string {
	reader := text.NewReader(content)
	doc := markdown.Parser().Parse(reader)

	var blocks []string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph:
			if block := extractNodeText(n, content); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			var b strings.Builder
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(content))
			}
			if block := strings.TrimRight(b.String(), "\n"); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if block := extractNodeText(n, content); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(blocks, "\n\n")
}

// extractNodeText collects the text content of a node and its children.
func extractNodeText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
