package snapcache

import (
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/snapcache/codec"
	"github.com/unkn0wn-root/snapcache/store/memstore"
)

// page is the stand-in for a cached API payload.
type page struct {
	Number int      `json:"number"`
	Items  []string `json:"items"`
}

// fakeClock makes TTL behavior deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T, clk *fakeClock, mod func(*Options[string, page])) Cache[string, page] {
	t.Helper()
	opts := Options[string, page]{
		Lifetime:   time.Hour,
		KeyCodec:   codec.String{},
		ValueCodec: codec.JSON[page]{},
		Dir:        t.TempDir(),
	}
	if clk != nil {
		opts.Now = clk.Now
	}
	if mod != nil {
		mod(&opts)
	}
	cc, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })
	return cc
}

func mustImpl[K comparable, V any](t *testing.T, c Cache[K, V]) *cache[K, V] {
	t.Helper()
	impl, ok := c.(*cache[K, V])
	if !ok {
		t.Fatalf("unexpected concrete type for Cache")
	}
	return impl
}

type recordingHooks struct {
	NopHooks
	mu       sync.Mutex
	evicted  []any
	expired  []any
	rejected []any
	saveErrs []error
	loadErrs []error
}

func (h *recordingHooks) EntryEvicted(k any) {
	h.mu.Lock()
	h.evicted = append(h.evicted, k)
	h.mu.Unlock()
}

func (h *recordingHooks) EntryExpired(k any) {
	h.mu.Lock()
	h.expired = append(h.expired, k)
	h.mu.Unlock()
}

func (h *recordingHooks) SetRejected(k any) {
	h.mu.Lock()
	h.rejected = append(h.rejected, k)
	h.mu.Unlock()
}

func (h *recordingHooks) SnapshotSaveError(_ string, err error) {
	h.mu.Lock()
	h.saveErrs = append(h.saveErrs, err)
	h.mu.Unlock()
}

func (h *recordingHooks) SnapshotLoadError(_ string, err error) {
	h.mu.Lock()
	h.loadErrs = append(h.loadErrs, err)
	h.mu.Unlock()
}

// ==============================
// TTL expiry
// ==============================

// A value is served right up to its deadline and treated as absent from
// the deadline onward, with the stale entry removed as a side effect of
// the read.
func TestGetEnforcesDeadline(t *testing.T) {
	clk := newFakeClock()
	cc := newTestCache(t, clk, nil)
	impl := mustImpl(t, cc)

	v := page{Number: 1, Items: []string{"a", "b"}}
	cc.Set("p1", v)

	if got, ok := cc.Get("p1"); !ok || got.Number != 1 {
		t.Fatalf("Get right after Set: ok=%v got=%+v", ok, got)
	}

	// one second before the deadline: still live
	clk.Advance(time.Hour - time.Second)
	if _, ok := cc.Get("p1"); !ok {
		t.Fatalf("Get just before deadline should hit")
	}

	// at the deadline: logically absent
	clk.Advance(time.Second)
	if _, ok := cc.Get("p1"); ok {
		t.Fatalf("Get at deadline should miss")
	}

	// the lazy check must have removed the entry everywhere
	if impl.tracker.contains("p1") {
		t.Fatalf("expired key still tracked after read")
	}
	if _, ok := impl.store.Get("p1"); ok {
		t.Fatalf("expired entry still in store after read")
	}
}

// Without a read nothing enforces expiry: the entry stays in the store and
// the tracker until the next Get collects it.
func TestExpiryIsLazy(t *testing.T) {
	clk := newFakeClock()
	cc := newTestCache(t, clk, nil)

	cc.Set("p1", page{Number: 1})
	clk.Advance(2 * time.Hour)

	if cc.Len() != 1 {
		t.Fatalf("expired-but-unread entry should still be tracked, len=%d", cc.Len())
	}
	if _, ok := cc.Get("p1"); ok {
		t.Fatalf("expired entry served")
	}
	if cc.Len() != 0 {
		t.Fatalf("read should have purged the entry, len=%d", cc.Len())
	}
}

// Overwriting a key pushes its deadline out from the time of the new Set.
func TestSetRefreshesDeadline(t *testing.T) {
	clk := newFakeClock()
	cc := newTestCache(t, clk, nil)

	cc.Set("p1", page{Number: 1})
	clk.Advance(50 * time.Minute)
	cc.Set("p1", page{Number: 2})
	clk.Advance(50 * time.Minute) // 100m after first set, 50m after second

	got, ok := cc.Get("p1")
	if !ok || got.Number != 2 {
		t.Fatalf("refreshed entry should survive: ok=%v got=%+v", ok, got)
	}
}

// ==============================
// Removal
// ==============================

func TestRemoveIsIdempotent(t *testing.T) {
	cc := newTestCache(t, nil, nil)
	impl := mustImpl(t, cc)

	cc.Set("p1", page{Number: 1})
	cc.Remove("p1")

	lenAfterFirst := cc.Len()
	storeLen := impl.store.(*memstore.Store[string, Entry[string, page]]).Len()

	cc.Remove("p1") // second removal of an absent key

	if cc.Len() != lenAfterFirst || lenAfterFirst != 0 {
		t.Fatalf("state changed by removing absent key: len=%d", cc.Len())
	}
	if got := impl.store.(*memstore.Store[string, Entry[string, page]]).Len(); got != storeLen {
		t.Fatalf("store changed by removing absent key: %d -> %d", storeLen, got)
	}
	if _, ok := cc.Get("p1"); ok {
		t.Fatalf("removed key still readable")
	}
}

// ==============================
// Eviction consistency
// ==============================

// Inserting past capacity evicts other entries via the store's policy; at
// every observation point the tracker and the store agree on membership.
func TestEvictionKeepsTrackerConsistent(t *testing.T) {
	ms := memstore.New[string, Entry[string, page]](memstore.Config{MaxEntries: 3})
	rec := &recordingHooks{}
	cc := newTestCache(t, nil, func(o *Options[string, page]) {
		o.Store = ms
		o.Hooks = rec
	})
	impl := mustImpl(t, cc)

	keys := []string{"a", "b", "c", "d", "e"}
	for i, k := range keys {
		cc.Set(k, page{Number: i})

		// tracker and store must agree after every insert
		tracked := impl.tracker.snapshot()
		if len(tracked) != ms.Len() {
			t.Fatalf("after %q: tracker has %d keys, store has %d", k, len(tracked), ms.Len())
		}
		for _, tk := range tracked {
			if _, ok := ms.Get(tk); !ok {
				t.Fatalf("after %q: tracked key %q absent from store", k, tk)
			}
		}
		if ms.Len() > 3 {
			t.Fatalf("store exceeded capacity: %d", ms.Len())
		}
	}

	rec.mu.Lock()
	evictions := len(rec.evicted)
	rec.mu.Unlock()
	if evictions != 2 {
		t.Fatalf("expected 2 eviction notifications for 5 inserts at cap 3, got %d", evictions)
	}
}

// A store refusing a write must not leave the key tracked.
func TestRejectedSetIsNotTracked(t *testing.T) {
	rec := &recordingHooks{}
	cc := newTestCache(t, nil, func(o *Options[string, page]) {
		o.Store = rejectingStore{}
		o.Hooks = rec
	})
	impl := mustImpl(t, cc)

	cc.Set("p1", page{Number: 1})

	if impl.tracker.len() != 0 {
		t.Fatalf("rejected set left key tracked")
	}
	if _, ok := cc.Get("p1"); ok {
		t.Fatalf("rejected set readable")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.rejected) != 1 {
		t.Fatalf("expected 1 rejection hook, got %d", len(rec.rejected))
	}
}

type rejectingStore struct{}

func (rejectingStore) Set(string, Entry[string, page], int64) bool { return false }
func (rejectingStore) Get(string) (Entry[string, page], bool) {
	return Entry[string, page]{}, false
}
func (rejectingStore) Del(string)                                            {}
func (rejectingStore) SetEvictionObserver(func(string, Entry[string, page])) {}
func (rejectingStore) Close() error                                          { return nil }

// ==============================
// Background sweep
// ==============================

// The optional sweep reclaims expired entries without any read. Lazy
// expiry is checked against the injected clock; only the tick is real time.
func TestSweepReclaimsExpired(t *testing.T) {
	clk := newFakeClock()
	cc := newTestCache(t, clk, func(o *Options[string, page]) {
		o.SweepInterval = 10 * time.Millisecond
	})

	cc.Set("p1", page{Number: 1})
	cc.Set("p2", page{Number: 2})
	clk.Advance(2 * time.Hour)

	deadline := time.Now().Add(2 * time.Second)
	for cc.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep did not reclaim expired entries, len=%d", cc.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// ==============================
// Options validation
// ==============================

func TestNewValidatesOptions(t *testing.T) {
	base := func() Options[string, page] {
		return Options[string, page]{
			Lifetime:   time.Hour,
			KeyCodec:   codec.String{},
			ValueCodec: codec.JSON[page]{},
		}
	}

	t.Run("missing_lifetime", func(t *testing.T) {
		o := base()
		o.Lifetime = 0
		if _, err := New(o); err == nil {
			t.Fatalf("expected error for zero lifetime")
		}
	})

	t.Run("missing_key_codec", func(t *testing.T) {
		o := base()
		o.KeyCodec = nil
		if _, err := New(o); err == nil {
			t.Fatalf("expected error for nil key codec")
		}
	})

	t.Run("missing_value_codec", func(t *testing.T) {
		o := base()
		o.ValueCodec = nil
		if _, err := New(o); err == nil {
			t.Fatalf("expected error for nil value codec")
		}
	})
}
