package loader

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

const storeKey = "portfolio"

// Store holds the active record for handlers. Readers always see a whole
// Result; a reload replaces it wholesale.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Result]
	fresh   *cache.Cache
	mu      sync.Mutex
}

// NewStore returns a Store that reuses a loaded record for ttl. A zero ttl
// keeps the record until Reload is called.
func NewStore(l *Loader, ttl time.Duration) *Store {
	exp := ttl
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	cleanup := exp
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Store{loader: l, fresh: cache.New(exp, cleanup)}
}

// Current returns the active result, loading it first when none is cached or
// the cached copy expired.
func (s *Store) Current(ctx context.Context) Result {
	if cached, ok := s.fresh.Get(storeKey); ok {
		if res, ok := cached.(*Result); ok {
			return *res
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.fresh.Get(storeKey); ok {
		if res, ok := cached.(*Result); ok {
			return *res
		}
	}
	return s.reloadLocked(ctx)
}

// Reload loads the record now, regardless of the cache.
func (s *Store) Reload(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

// Last returns the most recent result without loading. ok is false before
// the first load.
func (s *Store) Last() (Result, bool) {
	res := s.current.Load()
	if res == nil {
		return Result{}, false
	}
	return *res, true
}

func (s *Store) reloadLocked(ctx context.Context) Result {
	res := s.loader.Load(ctx)
	s.current.Store(&res)
	s.fresh.Set(storeKey, &res, cache.DefaultExpiration)
	return res
}
