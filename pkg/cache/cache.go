// Package cache provides an in-memory, time-boxed cache for fetched values.
//
// A [Store] maps logical keys to the last successfully fetched value and the
// time it was stored. Freshness is decided by the caller on every lookup: an
// entry is fresh when now-storedAt < ttl, so one key can be read with
// different TTLs. Entries never expire on their own and there is no
// capacity bound; they are removed only by [Store.Invalidate] and
// [Store.Clear].
//
// # Usage
//
//	store := cache.New()
//	stats, err := cache.Fetch(ctx, store, "stats", 2*time.Minute,
//	    func(ctx context.Context) (launch.Stats, error) {
//	        return fetchStats(ctx)
//	    })
//
// A failed fetch is returned to the caller unchanged and leaves any existing
// entry in place. The store never retries; wrap fetch with httputil.Retry.
//
// # Concurrency
//
// A Store is safe for concurrent use. Concurrent misses on the same key are
// coalesced: one fetch runs and every waiting caller receives its value or
// its error.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/observability"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Store is a time-boxed key/value cache. The zero value is not usable; use [New].
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group

	// gens and epoch version every key. A fetch stores its result only if
	// neither moved while it ran, so invalidated data never lands.
	gens  map[string]uint64
	epoch uint64

	now   func() time.Time
	hooks observability.CacheHooks
}

// Option configures a [Store].
type Option func(*Store)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHooks sets the hooks that receive hit/miss events. By default the
// process-wide hooks from the observability package are used.
func WithHooks(h observability.CacheHooks) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = h
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchFunc produces the value for a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

// GetOrFetch returns the value stored under key if it is younger than ttl.
// Otherwise it calls fetch. A successful result is stored with the current
// time and returned; an error is returned unchanged and the existing entry,
// if any, is left untouched. A result whose key was invalidated while it was
// being fetched is returned to the caller but not stored.
func (s *Store) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (any, error) {
	kt := keyType(key)
	if v, ok := s.lookup(key, ttl); ok {
		s.hookset().OnCacheHit(ctx, kt)
		return v, nil
	}
	s.hookset().OnCacheMiss(ctx, kt)

	leader := false
	v, err, shared := s.group.Do(key, func() (any, error) {
		leader = true
		// Another caller may have stored the key while we waited for the group.
		if v, ok := s.lookup(key, ttl); ok {
			return v, nil
		}
		gen, epoch := s.version(key)
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if s.store(key, v, gen, epoch) {
			s.hookset().OnCacheSet(ctx, kt)
		}
		return v, nil
	})
	if shared && !leader {
		s.hookset().OnCacheCoalesced(ctx, kt)
	}
	return v, err
}

// version returns the current generation of key and of the whole store.
func (s *Store) version(key string) (uint64, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.gens[key]
	if !ok {
		s.gens[key] = 0
	}
	return gen, s.epoch
}

// store writes v under key unless key was invalidated since version was read.
func (s *Store) store(key string, v any, gen, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen || s.epoch != epoch {
		return false
	}
	s.entries[key] = entry{value: v, storedAt: s.now()}
	return true
}

// Get returns the value under key if it is younger than ttl, without fetching.
func (s *Store) Get(key string, ttl time.Duration) (any, bool) {
	return s.lookup(key, ttl)
}

// Invalidate removes key. It is a no-op if key is absent. A fetch already
// in flight for key is detached so the next miss starts a new one.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
	s.group.Forget(key)
}

// InvalidatePrefix removes every key that starts with prefix and returns how
// many were removed.
func (s *Store) InvalidatePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.gens {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		s.gens[k]++
		s.group.Forget(k)
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.gens {
		s.group.Forget(k)
	}
	s.entries = make(map[string]entry)
	s.epoch++
}

// Len returns the number of stored entries, fresh or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) lookup(key string, ttl time.Duration) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.storedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

func (s *Store) hookset() observability.CacheHooks {
	if s.hooks != nil {
		return s.hooks
	}
	return observability.Cache()
}

// Fetch is the typed form of [Store.GetOrFetch].
func Fetch[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	var zero T
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.ErrCodeInternal, "cache key %q holds %T, not %T", key, v, zero)
	}
	return t, nil
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
