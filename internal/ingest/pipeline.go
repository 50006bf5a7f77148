// Package ingest builds the corpus: it walks the document directory,
// extracts and chunks each supported file, embeds the chunks, and fills the
// document store. The corpus is built once at startup (or loaded from the
// persisted index) and never mutated afterwards.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"safety-ai/internal/chunker"
	"safety-ai/internal/docstore"
	"safety-ai/internal/extractor"
)

// Embedder produces unit-norm embedding vectors for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates document ingestion into the document store.
type Pipeline struct {
	store    *docstore.Store
	embedder Embedder
	chunker  *chunker.Chunker
	logger   *slog.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(store *docstore.Store, embedder Embedder) *Pipeline {
	return &Pipeline{
		store:    store,
		embedder: embedder,
		chunker:  chunker.New(0, 0),
		logger:   slog.Default(),
	}
}

// IndexDocument extracts, chunks, embeds, and stores a single file.
func (p *Pipeline) IndexDocument(ctx context.Context, path string) error {
	name := filepath.Base(path)

	pages, err := extractor.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}

	chunkerPages := make([]chunker.Page, len(pages))
	for i, pg := range pages {
		chunkerPages[i] = chunker.Page{Number: pg.Number, Text: pg.Text}
	}

	chunks := p.chunker.Chunk(name, chunkerPages)
	if len(chunks) == 0 {
		p.logger.WarnContext(ctx, "no chunks generated", "document", name)
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed %s: %w", name, err)
	}

	if err := p.store.Add(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}

	p.logger.InfoContext(ctx, "indexed document", "document", name, "chunks", len(chunks))
	return nil
}

// IndexAll walks the directory and indexes every supported file. Unsupported
// files are skipped with a warning; per-file errors are logged and counted
// but do not stop the walk.
func (p *Pipeline) IndexAll(ctx context.Context, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("documents directory unavailable: %w", err)
	}

	var successCount, errorCount int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !extractor.Supported(d.Name()) {
			p.logger.WarnContext(ctx, "skipping unsupported file type", "file", d.Name())
			return nil
		}

		if err := p.IndexDocument(ctx, path); err != nil {
			errorCount++
			p.logger.ErrorContext(ctx, "failed to index file", "file", d.Name(), "error", err)
			return nil // continue with the next file
		}
		successCount++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk documents directory: %w", err)
	}

	p.logger.InfoContext(ctx, "ingestion completed", "success", successCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("ingestion completed with %d errors", errorCount)
	}
	return nil
}

// BuildOrLoad loads the persisted index when present and valid, otherwise
// rebuilds the corpus from the documents directory and persists the result.
// Startup is idempotent: a rebuild produces a search-compatible index even if
// not a byte-identical one. A loaded index that disagrees with the mapping or
// the embedding dimension is a configuration error, surfaced immediately.
func BuildOrLoad(ctx context.Context, store *docstore.Store, pipeline *Pipeline, indexPath, docsPath string, expectedDim int) error {
	if _, err := os.Stat(indexPath); err == nil {
		if err := store.Index().Load(indexPath); err != nil {
			return fmt.Errorf("failed to load persisted index: %w", err)
		}
		if err := store.Validate(ctx, expectedDim); err != nil {
			return fmt.Errorf("persisted index is unusable: %w", err)
		}
		slog.Info("loaded persisted index", "path", indexPath, "vectors", store.Index().Len())
		return nil
	}

	slog.Info("no persisted index, building corpus", "docs", docsPath)
	if err := store.Reset(ctx); err != nil {
		return err
	}
	if err := pipeline.IndexAll(ctx, docsPath); err != nil {
		return err
	}
	if store.Index().Len() == 0 {
		slog.Warn("corpus is empty after ingestion", "docs", docsPath)
		return nil
	}
	if err := store.Index().Save(indexPath); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	slog.Info("corpus built and persisted", "path", indexPath, "vectors", store.Index().Len())
	return nil
}
