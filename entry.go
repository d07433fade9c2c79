package snapcache

import "time"

// Entry is the unit stored in the backing store: a key, its value, and the
// wall-clock instant after which the value must no longer be served.
// Entries are immutable once built; validity is a function of ExpiresAt
// against the current clock, checked lazily on read.
type Entry[K comparable, V any] struct {
	Key       K
	Value     V
	ExpiresAt time.Time
}

// Expired reports whether the entry is stale at the given instant.
// The boundary itself counts as expired.
func (e Entry[K, V]) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
