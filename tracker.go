package snapcache

import "sync"

// keyTracker is the set of keys believed to be present in the backing store.
// The store's eviction observer mutates it, possibly from a store-owned
// goroutine, so every access goes through the mutex.
//
// The tracker may transiently hold keys whose entries have expired but not
// yet been purged; expiry is enforced on read, not here.
type keyTracker[K comparable] struct {
	mu   sync.Mutex
	keys map[K]struct{}
}

func newKeyTracker[K comparable]() *keyTracker[K] {
	return &keyTracker[K]{keys: make(map[K]struct{})}
}

func (t *keyTracker[K]) add(k K) {
	t.mu.Lock()
	t.keys[k] = struct{}{}
	t.mu.Unlock()
}

// remove is idempotent; removing an untracked key is a no-op.
func (t *keyTracker[K]) remove(k K) {
	t.mu.Lock()
	delete(t.keys, k)
	t.mu.Unlock()
}

func (t *keyTracker[K]) contains(k K) bool {
	t.mu.Lock()
	_, ok := t.keys[k]
	t.mu.Unlock()
	return ok
}

func (t *keyTracker[K]) len() int {
	t.mu.Lock()
	n := len(t.keys)
	t.mu.Unlock()
	return n
}

// snapshot returns the tracked keys in unspecified order.
func (t *keyTracker[K]) snapshot() []K {
	t.mu.Lock()
	out := make([]K, 0, len(t.keys))
	for k := range t.keys {
		out = append(out, k)
	}
	t.mu.Unlock()
	return out
}
