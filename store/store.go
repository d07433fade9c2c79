// Package store defines the backing-store abstraction used by snapcache.
//
// A Store is an opaque, bounded associative store. It may evict entries at
// any time based on its own capacity or memory-pressure policy; the cache
// layer does not control when eviction happens, only what happens as a
// result. Whenever a store drops an entry for any reason other than an
// explicit Del, it MUST invoke the registered eviction observer
// synchronously, on whatever call stack caused the drop. The observer may
// therefore run concurrently with foreground operations if the store evicts
// from its own goroutines; implementations make no further thread-safety
// promises beyond their own.
package store

// Store is a bounded key/value store with a single-slot eviction observer.
type Store[K comparable, V any] interface {
	// Set stores value under key. cost is advisory; stores that are not
	// cost-based ignore it. Returns false when the store refused the
	// write under pressure - the entry is NOT retrievable in that case.
	Set(key K, value V, cost int64) bool

	// Get returns (value, true) on hit, (zero, false) on miss.
	Get(key K) (V, bool)

	// Del removes a key. Removing an absent key is a no-op and does not
	// notify the observer.
	Del(key K)

	// SetEvictionObserver registers the single observer invoked with
	// every entry the store drops on its own. Registering replaces any
	// previous observer; a nil observer disables notification.
	SetEvictionObserver(func(key K, value V))

	// Close releases store resources.
	Close() error
}
