// Package asynchook decouples hook execution from cache hot paths.
//
// EntryEvicted can fire on a store-owned goroutine under memory pressure
// and EntryExpired fires inside Get; a slow sink there stalls the caller.
// This decorator forwards events through a bounded queue to worker
// goroutines and drops events when the queue is full.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ExpiredEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker, queue of 1000
//	defer hooks.Close()
//
//	m, _ := snapcache.NewManager[Page](snapcache.ManagerOptions[Page]{
//	    Name:     "feed",
//	    Lifetime: 12 * time.Hour,
//	    Codec:    codec.MustCBOR[Page](false),
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/snapcache"
)

type Hooks struct {
	inner snapcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ snapcache.Hooks = (*Hooks)(nil)

func New(inner snapcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Safe to call twice.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryEvicted(k any) { h.try(func() { h.inner.EntryEvicted(k) }) }
func (h *Hooks) EntryExpired(k any) { h.try(func() { h.inner.EntryExpired(k) }) }
func (h *Hooks) SetRejected(k any)  { h.try(func() { h.inner.SetRejected(k) }) }
func (h *Hooks) SnapshotSaved(name string, entries int) {
	h.try(func() { h.inner.SnapshotSaved(name, entries) })
}
func (h *Hooks) SnapshotSaveError(name string, err error) {
	h.try(func() { h.inner.SnapshotSaveError(name, err) })
}
func (h *Hooks) SnapshotLoadError(name string, err error) {
	h.try(func() { h.inner.SnapshotLoadError(name, err) })
}
