package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/session"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is the single-process session store used when no Redis address
// is configured. Values are kept as JSON so callers never share pointers.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	entry, ok := m.entries[cacheKey(id)]
	if ok && !m.now().Before(entry.expiresAt) {
		delete(m.entries, cacheKey(id))
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrCacheMiss
	}

	var s session.Session
	if err := json.Unmarshal(entry.data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &s, nil
}

func (m *MemoryCache) Set(_ context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cacheKey(s.ID)] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, cacheKey(id))
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (m *MemoryCache) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// RunSweeper removes expired sessions every tick until ctx is done.
func (m *MemoryCache) RunSweeper(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("session sweeper removed %d expired sessions", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
