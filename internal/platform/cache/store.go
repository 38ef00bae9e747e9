package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/scorewise/predictions-api/internal/platform/resilience"
)

// Store is an in-process TTL cache with singleflight-protected loads. It backs
// the hot read paths (match listings, standings) so repeated requests in the
// same window do not fan out to Postgres.
//
// Expired entries are dropped lazily on read and swept opportunistically on
// write; there is no background janitor goroutine to manage.
type Store struct {
	ttl    time.Duration
	flight resilience.SingleFlight

	mu        sync.RWMutex
	items     map[string]item
	lastSweep time.Time
}

type item struct {
	value    any
	storedAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		items: make(map[string]item),
	}
}

func (s *Store) expired(entry item, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.storedAt) >= s.ttl
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.expired(entry, time.Now()) {
		s.mu.Lock()
		// Re-check under the write lock; a fresher Set may have raced us.
		if current, ok := s.items[key]; ok && s.expired(current, time.Now()) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.items[key] = item{value: value, storedAt: now}
	s.sweepLocked(now)
	s.mu.Unlock()
}

// sweepLocked drops every expired entry at most once per TTL interval, so a
// write-heavy store cannot grow unbounded with dead keys.
func (s *Store) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for key, entry := range s.items {
		if s.expired(entry, now) {
			delete(s.items, key)
		}
	}
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, running loader at most once per
// key across concurrent callers when the entry is cold.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A caller that lost the singleflight race may find the winner's
		// freshly stored value here.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
