package snapcache

import (
	"fmt"
	"time"

	cd "github.com/unkn0wn-root/snapcache/codec"
	st "github.com/unkn0wn-root/snapcache/store"
	"github.com/unkn0wn-root/snapcache/store/memstore"
)

// CostFunc assigns the storage cost handed to the backing store for an
// entry. Cost-based stores (ristretto) use it for capacity accounting;
// others ignore it.
type CostFunc[K comparable, V any] func(key K, value V) int64

// Cache is the expiring cache API. Entries live until the wall-clock
// deadline computed at insert time; expiry is enforced lazily by Get -
// there is no background timer unless SweepInterval is set.
//
// Single operations inherit whatever concurrency safety the backing store
// provides; compound sequences (check-then-act) are never atomic.
type Cache[K comparable, V any] interface {
	// Set stores value under key with deadline now+Lifetime. It cannot
	// fail: a full store makes room by evicting other entries.
	Set(key K, value V)

	// Get returns the live value for key. Entries at or past their
	// deadline are removed on the spot and reported as absent.
	Get(key K) (V, bool)

	// Remove deletes key. Idempotent; absent keys are a no-op.
	Remove(key K)

	// Len is the number of tracked keys, entries expired-but-unread
	// included.
	Len() int

	// Keys returns the tracked keys in unspecified order.
	Keys() []K

	// Snapshot collects every entry still live at call time. Expired
	// entries encountered along the way are removed as a side effect.
	Snapshot() []Entry[K, V]

	// Save persists Snapshot() atomically to <dir>/<name>.cache.
	Save(name string) error

	// Close stops the sweep loop (if any) and closes the store.
	Close() error
}

// Options tune the cache. Lifetime, KeyCodec and ValueCodec are required;
// everything else has defaults.
type Options[K comparable, V any] struct {
	// Required
	Lifetime   time.Duration // entry TTL, computed at insert time
	KeyCodec   cd.Codec[K]   // key <-> bytes for the snapshot file
	ValueCodec cd.Codec[V]   // value <-> bytes for the snapshot file

	Store         st.Store[K, Entry[K, V]] // nil => bounded memstore (LRU)
	MaxEntries    int                      // default memstore bound; 0 => 4096
	Dir           string                   // snapshot dir; "" => os.UserCacheDir
	Logger        Logger                   // nil => NopLogger
	Hooks         Hooks                    // nil => NopHooks
	Now           func() time.Time         // injectable clock; nil => time.Now
	Cost          CostFunc[K, V]           // nil => constant 1
	SweepInterval time.Duration            // optional reclamation; 0 => disabled
}

const defaultMaxEntries = 4096

// New builds an empty cache.
func New[K comparable, V any](opts Options[K, V]) (Cache[K, V], error) {
	return newCache(opts)
}

func newCache[K comparable, V any](opts Options[K, V]) (*cache[K, V], error) {
	if opts.Lifetime <= 0 {
		return nil, fmt.Errorf("snapcache: positive lifetime is required")
	}
	if opts.KeyCodec == nil {
		return nil, fmt.Errorf("snapcache: key codec is required")
	}
	if opts.ValueCodec == nil {
		return nil, fmt.Errorf("snapcache: value codec is required")
	}

	c := &cache[K, V]{
		lifetime: opts.Lifetime,
		keyCodec: opts.KeyCodec,
		valCodec: opts.ValueCodec,
		dir:      opts.Dir,
		tracker:  newKeyTracker[K](),
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if opts.Now != nil {
		c.now = opts.Now
	} else {
		c.now = time.Now
	}
	if opts.Cost != nil {
		c.cost = opts.Cost
	} else {
		c.cost = func(K, V) int64 { return 1 }
	}
	if opts.Store != nil {
		c.store = opts.Store
	} else {
		c.store = memstore.New[K, Entry[K, V]](memstore.Config{
			MaxEntries: coalesce(opts.MaxEntries, defaultMaxEntries),
		})
	}

	c.store.SetEvictionObserver(c.evicted)

	if opts.SweepInterval > 0 {
		c.startSweep(opts.SweepInterval)
	}
	return c, nil
}
