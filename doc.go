// Package snapcache implements a generic expiring cache over a bounded,
// pressure-evictable backing store, with snapshot persistence to disk.
//
// Entries expire by wall-clock deadline, enforced lazily on read; nothing
// fires at expiration time. Storage is delegated to a Store that may evict
// entries out of band and notifies a registered observer synchronously when
// it does, keeping an internal key tracker consistent with what the store
// actually holds.
//
// Components:
//   - Store: bounded key/value store with a single-slot eviction observer
//     (memstore by default; Ristretto and BigCache adapters available).
//   - Codec[V]: (de)serializes keys and values for the snapshot file.
//   - Manager: string-keyed facade with best-effort write-through
//     persistence; callers above it only ever see cache-miss semantics.
//
// Snapshots are written atomically to <cache-dir>/<name>.cache and never
// contain entries already expired at encode time. Restoring preserves the
// original deadlines; stale entries loaded from disk are collected by the
// next read.
//
// Warm-start pattern:
//
//	m, _ := snapcache.NewManager[Payload](snapcache.ManagerOptions[Payload]{
//	    Name:     "feed",
//	    Lifetime: 12 * time.Hour,
//	    Codec:    codec.MustCBOR[Payload](false),
//	})
//	m.Set("page-1", payload) // insert + best-effort save
//	v, ok := m.Get("page-1")
package snapcache
