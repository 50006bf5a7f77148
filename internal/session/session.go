// Package session holds per-conversation state: bounded chat history and
// transient uploaded-document embeddings. Entries expire by TTL, swept lazily
// on access; nothing here is ever persisted.
package session

import (
	"fmt"
	"sync"
	"time"

	"safety-ai/internal/chunker"
	"safety-ai/internal/index"
)

// Turn is one chat exchange entry.
type Turn struct {
	Role    string
	Content string
}

// UploadResult is a hit from a session's upload index.
type UploadResult struct {
	Chunk chunker.Chunk
	Score float32
}

// session is the per-conversation state. Contents are guarded by the
// session's own mutex; different sessions never contend.
type session struct {
	mu          sync.Mutex
	history     []Turn
	uploads     []chunker.Chunk
	uploadIdx   *index.Flat
	lastTouched time.Time
}

// Store is a TTL-bounded mapping from session id to conversation state.
// The store mutex protects only the set of keys; per-session data has its
// own lock, so requests for different sessions proceed in parallel.
type Store struct {
	mu           sync.Mutex
	sessions     map[string]*session
	ttl          time.Duration
	historyLimit int
	now          func() time.Time
}

// NewStore creates a session store with the given TTL and history cap.
func NewStore(ttl time.Duration, historyLimit int) *Store {
	return &Store{
		sessions:     make(map[string]*session),
		ttl:          ttl,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// get sweeps expired sessions, then returns the session for id, creating it
// if needed. Every public entry point goes through here, so eviction is
// lazy-on-access rather than timer-driven.
func (s *Store) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, sess := range s.sessions {
		if now.Sub(sess.lastTouched) > s.ttl {
			delete(s.sessions, key)
		}
	}

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{lastTouched: now}
		s.sessions[id] = sess
	}
	sess.lastTouched = now
	return sess
}

// History returns a copy of the session's chat history, oldest first.
func (s *Store) History(id string) []Turn {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]Turn, len(sess.history))
	copy(out, sess.history)
	return out
}

// AppendTurn appends a turn and trims history to the configured cap. Older
// turns are discarded, never summarized.
func (s *Store) AppendTurn(id, role, content string) {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = append(sess.history, Turn{Role: role, Content: content})
	if len(sess.history) > s.historyLimit {
		sess.history = sess.history[len(sess.history)-s.historyLimit:]
	}
}

// Clear removes the session entirely: chat history and upload state go in one
// operation. Returns false when no live session existed for id.
func (s *Store) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.now().Sub(sess.lastTouched) > s.ttl {
		delete(s.sessions, id)
		return false
	}
	delete(s.sessions, id)
	return true
}

// AddUpload appends uploaded chunks and their embeddings to the session's
// ephemeral index. The index is created on first upload and dropped with the
// session.
func (s *Store) AddUpload(id string, chunks []chunker.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk count %d does not match vector count %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.uploadIdx == nil {
		sess.uploadIdx = index.NewFlat()
	}
	if _, err := sess.uploadIdx.Add(vectors); err != nil {
		return fmt.Errorf("failed to index uploaded chunks: %w", err)
	}
	sess.uploads = append(sess.uploads, chunks...)
	return nil
}

// HasUploads reports whether the session has any uploaded chunks.
func (s *Store) HasUploads(id string) bool {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.uploads) > 0
}

// SearchUploads returns up to k uploaded chunks ordered by descending
// similarity to the query vector.
func (s *Store) SearchUploads(id string, query []float32, k int) ([]UploadResult, error) {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.uploadIdx == nil {
		return nil, nil
	}
	hits, err := sess.uploadIdx.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("upload index search failed: %w", err)
	}

	results := make([]UploadResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, UploadResult{Chunk: sess.uploads[hit.ID], Score: hit.Score})
	}
	return results, nil
}

// Len returns the number of live sessions (after a sweep).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, sess := range s.sessions {
		if now.Sub(sess.lastTouched) > s.ttl {
			delete(s.sessions, key)
		}
	}
	return len(s.sessions)
}
