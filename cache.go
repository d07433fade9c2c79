package snapcache

import (
	"sync"
	"time"

	cd "github.com/unkn0wn-root/snapcache/codec"
	st "github.com/unkn0wn-root/snapcache/store"
)

type cache[K comparable, V any] struct {
	store    st.Store[K, Entry[K, V]]
	tracker  *keyTracker[K]
	lifetime time.Duration
	dir      string
	keyCodec cd.Codec[K]
	valCodec cd.Codec[V]
	now      func() time.Time
	cost     CostFunc[K, V]
	log      Logger
	hooks    Hooks

	// optional background reclamation
	ticker    *time.Ticker
	stopCh    chan struct{}
	sweepWg   sync.WaitGroup
	closeOnce sync.Once
}

// evicted is the single eviction observer registered with the store. The
// store invokes it synchronously for every entry it drops on its own, on
// whatever call stack - possibly a store goroutine - caused the drop.
func (c *cache[K, V]) evicted(key K, _ Entry[K, V]) {
	c.tracker.remove(key)
	c.hooks.EntryEvicted(key)
}

func (c *cache[K, V]) Set(key K, value V) {
	e := Entry[K, V]{Key: key, Value: value, ExpiresAt: c.now().Add(c.lifetime)}
	if !c.store.Set(key, e, c.cost(key, value)) {
		// refused under pressure; a previously stored entry under this
		// key is gone either way, so stop tracking it
		c.tracker.remove(key)
		c.hooks.SetRejected(key)
		c.log.Debug("set rejected by store (pressure)", Fields{"key": key})
		return
	}
	c.tracker.add(key)
}

func (c *cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entry(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// entry is the lazy-expiry-checked accessor shared by Get and Snapshot.
// Finding an entry at or past its deadline removes it; this is the only
// place expiration is enforced.
func (c *cache[K, V]) entry(key K) (Entry[K, V], bool) {
	e, ok := c.store.Get(key)
	if !ok {
		return Entry[K, V]{}, false
	}
	if e.Expired(c.now()) {
		c.Remove(key)
		c.hooks.EntryExpired(key)
		return Entry[K, V]{}, false
	}
	return e, true
}

// Remove deletes from the store and eagerly drops the tracker key rather
// than waiting on an eviction notification; both paths converge on the
// same state and the tracker removal is idempotent.
func (c *cache[K, V]) Remove(key K) {
	c.store.Del(key)
	c.tracker.remove(key)
}

func (c *cache[K, V]) Len() int { return c.tracker.len() }

func (c *cache[K, V]) Keys() []K { return c.tracker.snapshot() }

func (c *cache[K, V]) Snapshot() []Entry[K, V] {
	keys := c.tracker.snapshot()
	out := make([]Entry[K, V], 0, len(keys))
	for _, k := range keys {
		if e, ok := c.entry(k); ok {
			out = append(out, e)
		}
	}
	return out
}

// restore inserts a persisted entry as-is: the original deadline is kept
// and no expiry check runs. Stale entries are collected by the next read.
func (c *cache[K, V]) restore(e Entry[K, V]) {
	if c.store.Set(e.Key, e, c.cost(e.Key, e.Value)) {
		c.tracker.add(e.Key)
	}
}

// startSweep runs an optional reclamation loop. Lazy expiry alone is
// correct; the sweep only bounds how long dead entries occupy the store
// when nothing reads them.
func (c *cache[K, V]) startSweep(interval time.Duration) {
	c.ticker = time.NewTicker(interval)
	c.stopCh = make(chan struct{})
	c.sweepWg.Add(1)
	go func() {
		defer c.sweepWg.Done()
		for {
			select {
			case <-c.ticker.C:
				c.sweep()
			case <-c.stopCh:
				return
			}
		}
	}()
}

func (c *cache[K, V]) sweep() {
	removed := 0
	for _, k := range c.tracker.snapshot() {
		if _, ok := c.entry(k); !ok {
			removed++
		}
	}
	if removed > 0 {
		c.log.Debug("sweep reclaimed expired entries", Fields{"removed": removed})
	}
}

func (c *cache[K, V]) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.stopCh != nil {
			close(c.stopCh)
			c.ticker.Stop()
			c.sweepWg.Wait()
		}
		err = c.store.Close()
	})
	return err
}
