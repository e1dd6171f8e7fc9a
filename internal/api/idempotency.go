package api

import (
	"net/http"
	"sync"
	"time"
)

// recorded is a response kept for replay.
type recorded struct {
	status int
	body   []byte
}

func (rec recorded) write(w http.ResponseWriter, replayed bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
	}
	w.WriteHeader(rec.status)
	_, _ = w.Write(rec.body)
}

type replayEntry struct {
	response recorded
	storedAt time.Time
}

// replayCache remembers save responses by idempotency key for ttl.
type replayCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]replayEntry
}

func newReplayCache(ttl time.Duration, now func() time.Time) *replayCache {
	return &replayCache{ttl: ttl, now: now, entries: make(map[string]replayEntry)}
}

func (c *replayCache) get(key string) (recorded, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return recorded{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return recorded{}, false
	}
	return entry.response, true
}

func (c *replayCache) put(key string, response recorded) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = replayEntry{response: response, storedAt: now}
}
