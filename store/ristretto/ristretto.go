// Package ristretto adapts dgraph-io/ristretto as a snapcache backing
// store. Ristretto is cost-bounded with an admission policy: writes may be
// refused under pressure, sets apply asynchronously, and evictions happen
// on ristretto-owned goroutines. The observer is wired to both OnEvict and
// OnReject so every out-of-band drop reaches the tracker.
//
// Keys must be of a kind ristretto can hash: strings, byte slices and
// integer types. Other key types panic inside ristretto.
package ristretto

import (
	"errors"
	"sync"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/unkn0wn-root/snapcache/store"
)

// boxed rides through ristretto alongside the value. Ristretto's eviction
// callbacks expose only the key hash, so the original key travels with the
// payload to make the (key, value) notification possible.
type boxed[K comparable, V any] struct {
	key K
	val V
}

type Store[K comparable, V any] struct {
	c *rc.Cache

	mu      sync.RWMutex
	onEvict func(K, V)
}

var _ st.Store[string, int] = (*Store[string, int])(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New[K comparable, V any](cfg Config) (*Store[K, V], error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	s := &Store[K, V]{}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
		OnEvict:     func(item *rc.Item) { s.notify(item.Value) },
		OnReject:    func(item *rc.Item) { s.notify(item.Value) },
	})
	if err != nil {
		return nil, err
	}
	s.c = c
	return s, nil
}

func (s *Store[K, V]) notify(v any) {
	b, ok := v.(boxed[K, V])
	if !ok {
		return
	}
	s.mu.RLock()
	fn := s.onEvict
	s.mu.RUnlock()
	if fn != nil {
		fn(b.key, b.val)
	}
}

func (s *Store[K, V]) SetEvictionObserver(fn func(K, V)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

func (s *Store[K, V]) Set(key K, value V, cost int64) bool {
	return s.c.Set(key, boxed[K, V]{key: key, val: value}, cost)
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	var zero V
	v, ok := s.c.Get(key)
	if !ok {
		return zero, false
	}
	b, ok := v.(boxed[K, V])
	if !ok {
		// unexpected entry shape; drop it
		s.c.Del(key)
		return zero, false
	}
	return b.val, true
}

func (s *Store[K, V]) Del(key K) { s.c.Del(key) }

// Wait blocks until buffered sets have been applied. Useful in tests and
// anywhere read-your-write matters.
func (s *Store[K, V]) Wait() { s.c.Wait() }

func (s *Store[K, V]) Close() error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics is on.
// Not part of the store.Store contract.
func (s *Store[K, V]) Metrics() *rc.Metrics { return s.c.Metrics }
