package docstore

import (
	"context"
	"database/sql"
	"fmt"

	"safety-ai/internal/chunker"
	"safety-ai/internal/index"
)

// Record is one indexed chunk: the mapping row for a vector id.
type Record struct {
	VectorID     int
	ChunkID      string
	DocumentName string
	Page         *int
	Text         string
}

// Result is a search hit with its cosine similarity (higher is better).
type Result struct {
	ChunkID      string
	DocumentName string
	Page         *int
	Text         string
	Score        float32
}

// Store is the corpus-wide document store: a vector index over every ingested
// chunk plus the SQLite id→record mapping. It is built (or loaded) once at
// startup and read-only afterwards, so concurrent searches need no
// coordination beyond the index's own read lock.
type Store struct {
	db  *sql.DB
	idx *index.Flat
}

// New creates a store over an open database and an index.
func New(db *sql.DB, idx *index.Flat) *Store {
	return &Store{db: db, idx: idx}
}

// Index exposes the underlying vector index (for persistence at build time).
func (s *Store) Index() *index.Flat {
	return s.idx
}

// Add appends chunks and their embeddings. Chunks and vectors are stored in
// lockstep: the index assigns dense vector ids and the mapping rows use the
// same ids, in one transaction, so a failure leaves no orphaned rows.
func (s *Store) Add(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk count %d does not match vector count %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	first, err := s.idx.Add(vectors)
	if err != nil {
		return fmt.Errorf("failed to add vectors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (vector_id, chunk_id, document_name, page, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, chunk := range chunks {
		var page sql.NullInt64
		if chunk.Page != nil {
			page = sql.NullInt64{Int64: int64(*chunk.Page), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, first+i, chunk.ID, chunk.DocumentName, page, chunk.Text); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}
	return nil
}

// Search returns up to k records ordered by descending similarity to the
// query vector.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]Result, error) {
	hits, err := s.idx.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		rec, err := s.getByVectorID(ctx, hit.ID)
		if err == sql.ErrNoRows {
			// Index and mapping disagree; skip rather than fail the search.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load record %d: %w", hit.ID, err)
		}
		results = append(results, Result{
			ChunkID:      rec.ChunkID,
			DocumentName: rec.DocumentName,
			Page:         rec.Page,
			Text:         rec.Text,
			Score:        hit.Score,
		})
	}
	return results, nil
}

// Count returns the number of mapping rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}

// Reset drops all mapping rows, for a full rebuild.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to reset chunks: %w", err)
	}
	return nil
}

// Validate cross-checks the loaded index against the mapping and the live
// embedding dimension. Any disagreement is a configuration error: the index
// was built with different inputs and must be rebuilt, not patched.
func (s *Store) Validate(ctx context.Context, expectedDim int) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if count != s.idx.Len() {
		return fmt.Errorf("index has %d vectors but mapping has %d records", s.idx.Len(), count)
	}
	if s.idx.Len() > 0 && s.idx.Dim() != expectedDim {
		return fmt.Errorf("index dimension %d does not match embedding dimension %d", s.idx.Dim(), expectedDim)
	}
	return nil
}

func (s *Store) getByVectorID(ctx context.Context, id int) (*Record, error) {
	var rec Record
	var page sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT vector_id, chunk_id, document_name, page, text FROM chunks WHERE vector_id = ?",
		id,
	).Scan(&rec.VectorID, &rec.ChunkID, &rec.DocumentName, &page, &rec.Text)
	if err != nil {
		return nil, err
	}
	if page.Valid {
		p := int(page.Int64)
		rec.Page = &p
	}
	return &rec, nil
}
