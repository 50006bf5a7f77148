package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Flat is an append-only exact nearest-neighbor index over unit-norm vectors.
// Vector ids are dense row positions assigned in insertion order; there is no
// deletion or reordering short of a full rebuild, which keeps ids stable for
// the lifetime of the index.
//
// Search computes dot products, which equal cosine similarity for unit-norm
// inputs, so scores are in [-1, 1] and higher is better.
type Flat struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float32
}

// Hit is a single search result: the row id of a stored vector and its
// cosine similarity to the query.
type Hit struct {
	ID    int
	Score float32
}

// NewFlat creates an empty index. The dimension is fixed by the first Add.
func NewFlat() *Flat {
	return &Flat{}
}

// Add appends vectors to the index and returns the id of the first one.
// All vectors must share the dimension fixed at first insertion; a mismatch
// rejects the whole batch so the index is never partially corrupted.
func (f *Flat) Add(vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, fmt.Errorf("no vectors to add")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dim == 0 {
		f.dim = len(vectors[0])
		if f.dim == 0 {
			return 0, fmt.Errorf("cannot add zero-dimension vector")
		}
	}
	for i, v := range vectors {
		if len(v) != f.dim {
			return 0, fmt.Errorf("vector %d has dimension %d, index has %d", i, len(v), f.dim)
		}
	}

	first := len(f.vectors)
	f.vectors = append(f.vectors, vectors...)
	return first, nil
}

// Search returns up to k hits ordered by descending similarity.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.vectors) == 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("query has dimension %d, index has %d", len(query), f.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{ID: i, Score: dot(v, query)}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// Dim returns the fixed dimension, or 0 before the first Add.
func (f *Flat) Dim() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dim
}

// flatFile is the on-disk representation.
type flatFile struct {
	Dim     int
	Vectors [][]float32
}

// Save writes the index to path. The file is written to a temp name and
// renamed so a crash never leaves a truncated index behind.
func (f *Flat) Save(path string) error {
	f.mu.RLock()
	snapshot := flatFile{Dim: f.dim, Vectors: f.vectors}
	f.mu.RUnlock()

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}

	if err := gob.NewEncoder(file).Encode(&snapshot); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close index file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// Load replaces the index contents with the file at path.
func (f *Flat) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open index file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var stored flatFile
	if err := gob.NewDecoder(file).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	if stored.Dim <= 0 && len(stored.Vectors) > 0 {
		return fmt.Errorf("index file has invalid dimension %d", stored.Dim)
	}
	for i, v := range stored.Vectors {
		if len(v) != stored.Dim {
			return fmt.Errorf("stored vector %d has dimension %d, file header says %d", i, len(v), stored.Dim)
		}
	}

	f.mu.Lock()
	f.dim = stored.Dim
	f.vectors = stored.Vectors
	f.mu.Unlock()
	return nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
