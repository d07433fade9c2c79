// Package bigcache adapts allegro/bigcache as a snapcache backing store.
// BigCache is a byte store keyed by string, so values cross the boundary
// through a codec; evicted entries are decoded before the observer sees
// them. Capacity is size-based (HardMaxCacheSizeMB) and oldest-first; the
// per-entry cost hint is ignored.
package bigcache

import (
	"errors"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/snapcache/codec"
	st "github.com/unkn0wn-root/snapcache/store"
)

type Store[V any] struct {
	c     *bc.BigCache
	codec codec.Codec[V]

	mu      sync.RWMutex
	onEvict func(string, V)
}

var _ st.Store[string, int] = (*Store[int])(nil)

type Config struct {
	// LifeWindow is bigcache's global entry lifetime. Pick it comfortably
	// above the cache-layer TTL so deadline enforcement stays with the
	// cache; entries bigcache ages out early are reported as evictions.
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New[V any](cfg Config, cd codec.Codec[V]) (*Store[V], error) {
	if cd == nil {
		return nil, errors.New("bigcache: codec is required")
	}
	s := &Store[V]{codec: cd}

	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	conf.OnRemoveWithReason = func(key string, entry []byte, reason bc.RemoveReason) {
		if reason == bc.Deleted {
			// explicit Del; the cache layer reconciles eagerly
			return
		}
		s.notify(key, entry)
	}

	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	s.c = c
	return s, nil
}

func (s *Store[V]) notify(key string, raw []byte) {
	v, err := s.codec.Decode(raw)
	if err != nil {
		return
	}
	s.mu.RLock()
	fn := s.onEvict
	s.mu.RUnlock()
	if fn != nil {
		fn(key, v)
	}
}

func (s *Store[V]) SetEvictionObserver(fn func(string, V)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

func (s *Store[V]) Set(key string, value V, _ int64) bool {
	b, err := s.codec.Encode(value)
	if err != nil {
		return false
	}
	return s.c.Set(key, b) == nil
}

func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	b, err := s.c.Get(key)
	if err != nil {
		return zero, false
	}
	v, err := s.codec.Decode(b)
	if err != nil {
		// self-heal corrupt bytes
		_ = s.c.Delete(key)
		return zero, false
	}
	return v, true
}

func (s *Store[V]) Del(key string) {
	// ErrEntryNotFound is the only delete error bigcache returns; absent
	// keys are a no-op by contract.
	_ = s.c.Delete(key)
}

func (s *Store[V]) Close() error { return s.c.Close() }
