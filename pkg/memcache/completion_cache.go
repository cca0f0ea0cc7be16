package mem

import (
	"sync"
	"time"
)

type CompletionStore interface {
	Set(key string, completion string, ttl time.Duration)

	// Get returns the completion for key if present and not expired.
	Get(key string) (string, bool)

	// Purge drops expired entries and reports how many were removed.
	Purge() int
}

type entry struct {
	completion string
	expiresAt  time.Time
}

type CompletionCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewCompletionCache() *CompletionCache {
	return &CompletionCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *CompletionCache) Set(key string, completion string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		completion: completion,
		expiresAt:  s.now().Add(ttl),
	}
}

func (s *CompletionCache) Get(key string) (string, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, key) // cleanup expired
		}
		s.mu.Unlock()
		return "", false
	}
	return e.completion, true
}

func (s *CompletionCache) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
