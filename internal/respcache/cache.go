// Package respcache caches generated answers keyed by prompt and retrieval
// context, so an identical request within the TTL never costs a second model
// call. It sits only in front of the language model; retrieval itself is
// cheap and must always see newly ingested documents.
package respcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	response  string
	timestamp time.Time
}

// Cache is a TTL-bounded response cache. Expired entries are purged
// opportunistically on the next operation, not by a background timer.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key derives a cache key from the prompt and a serialization of the context
// items. Context is part of the key on purpose: the same question with
// different retrieved context has a different correct answer.
func Key(prompt string, context []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s", len(prompt), prompt)
	for _, c := range context {
		fmt.Fprintf(h, "%d:%s", len(c), c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrCompute returns the cached response for key, or calls compute, stores
// the result, and returns it. A compute error is returned without caching, so
// transient provider failures are not pinned for the TTL.
func (c *Cache) GetOrCompute(key string, compute func() (string, error)) (string, bool, error) {
	c.mu.Lock()
	c.sweepLocked()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.response, true, nil
	}
	c.mu.Unlock()

	// Compute outside the lock: model calls are slow and other keys should
	// not queue behind them. A racing duplicate request does one extra call.
	response, err := compute()
	if err != nil {
		return "", false, err
	}

	c.mu.Lock()
	c.entries[key] = entry{response: response, timestamp: c.now()}
	c.mu.Unlock()
	return response, false, nil
}

// Len returns the number of live entries (after a sweep).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	return len(c.entries)
}

func (c *Cache) sweepLocked() {
	now := c.now()
	for key, e := range c.entries {
		if now.Sub(e.timestamp) > c.ttl {
			delete(c.entries, key)
		}
	}
}
