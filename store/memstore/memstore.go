// Package memstore is the default snapcache backing store: a mutex-guarded
// map bounded by entry count, with a pluggable eviction policy. Eviction is
// synchronous - the observer runs on the call stack of the Set that pushed
// the store over capacity - which keeps tracker consistency deterministic
// and testable.
package memstore

import (
	"sync"

	st "github.com/unkn0wn-root/snapcache/store"
)

type Config struct {
	// MaxEntries bounds the store; <= 0 means unbounded (no eviction).
	MaxEntries int
	// Policy picks the eviction order. Empty defaults to LRU.
	Policy PolicyType
}

// Store implements store.Store over an in-process map.
// Safe for concurrent use.
type Store[K comparable, V any] struct {
	mu      sync.Mutex
	max     int
	items   map[K]V
	policy  Policy[K]
	onEvict func(K, V)
}

var _ st.Store[string, int] = (*Store[string, int])(nil)

func New[K comparable, V any](cfg Config) *Store[K, V] {
	return &Store[K, V]{
		max:    cfg.MaxEntries,
		items:  make(map[K]V),
		policy: newPolicy[K](cfg.Policy),
	}
}

func (s *Store[K, V]) SetEvictionObserver(fn func(K, V)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

// Set never refuses a write: at capacity it makes room by evicting other
// entries per the policy. Room is made before the new key is tracked, so
// the incoming key is never its own victim.
func (s *Store[K, V]) Set(key K, value V, _ int64) bool {
	var (
		evKeys []K
		evVals []V
	)

	s.mu.Lock()
	_, exists := s.items[key]
	if !exists && s.max > 0 {
		for len(s.items) >= s.max {
			victim, ok := s.policy.Evict()
			if !ok {
				break
			}
			v, present := s.items[victim]
			if !present {
				continue
			}
			delete(s.items, victim)
			evKeys = append(evKeys, victim)
			evVals = append(evVals, v)
		}
	}
	s.items[key] = value
	s.policy.OnPut(key)
	if exists {
		// overwrite counts as use
		s.policy.OnGet(key)
	}
	fn := s.onEvict
	s.mu.Unlock()

	if fn != nil {
		for i, k := range evKeys {
			fn(k, evVals[i])
		}
	}
	return true
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	v, ok := s.items[key]
	if ok {
		s.policy.OnGet(key)
	}
	s.mu.Unlock()
	return v, ok
}

// Del is an explicit removal: the observer is not notified.
func (s *Store[K, V]) Del(key K) {
	s.mu.Lock()
	if _, ok := s.items[key]; ok {
		delete(s.items, key)
		s.policy.Remove(key)
	}
	s.mu.Unlock()
}

// Len reports the current entry count, expired entries included.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	n := len(s.items)
	s.mu.Unlock()
	return n
}

func (s *Store[K, V]) Close() error { return nil }
