// Package sloghooks is a ready-made Hooks sink that logs through slog,
// with sampling for the per-entry events and key redaction so cache keys
// (often request URLs or user identifiers) stay out of log storage.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/snapcache"
)

type Options struct {
	// Sampling for the hot per-entry events; 0/1 = log all.
	ExpiredEvery uint64
	EvictedEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(any) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	expiredCtr atomic.Uint64
	evictedCtr atomic.Uint64
}

var _ snapcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k any) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(fmt.Sprint(k)))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryEvicted(key any) {
	if h.l == nil || !sample(h.opts.EvictedEvery, &h.evictedCtr) {
		return
	}
	h.l.Debug("snapcache.entry_evicted",
		"key", h.redact(key))
}

func (h *Hooks) EntryExpired(key any) {
	if h.l == nil || !sample(h.opts.ExpiredEvery, &h.expiredCtr) {
		return
	}
	h.l.Debug("snapcache.entry_expired",
		"key", h.redact(key))
}

func (h *Hooks) SetRejected(key any) {
	if h.l == nil {
		return
	}
	h.l.Warn("snapcache.set_rejected",
		"key", h.redact(key))
}

func (h *Hooks) SnapshotSaved(name string, entries int) {
	if h.l == nil {
		return
	}
	h.l.Debug("snapcache.snapshot_saved",
		"name", name,
		"entries", entries)
}

func (h *Hooks) SnapshotSaveError(name string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("snapcache.snapshot_save_error",
		"name", name,
		"err", err)
}

func (h *Hooks) SnapshotLoadError(name string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("snapcache.snapshot_load_error",
		"name", name,
		"err", err)
}
