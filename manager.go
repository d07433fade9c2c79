package snapcache

import (
	"errors"
	"fmt"
	"time"

	cd "github.com/unkn0wn-root/snapcache/codec"
	st "github.com/unkn0wn-root/snapcache/store"
)

// Manager is a string-keyed facade over Cache with write-through snapshot
// persistence. It is the absorption boundary for every persistence
// failure: construction falls back to an empty cache if the snapshot
// cannot be loaded, and Set keeps the in-memory cache authoritative when a
// save fails. Callers above the manager only ever observe cache-miss
// semantics.
//
// One manager instance serves one payload shape under one file name; do
// not share a name across value types.
type Manager[V any] struct {
	name  string
	dir   string
	cache Cache[string, V]
	log   Logger
	hooks Hooks
}

// ManagerOptions configure a Manager. Name, Lifetime and Codec are
// required; keys are persisted as raw strings.
type ManagerOptions[V any] struct {
	Name     string        // snapshot file name, without the .cache suffix
	Lifetime time.Duration // entry TTL
	Codec    cd.Codec[V]   // value codec for the snapshot file

	Store      st.Store[string, Entry[string, V]] // nil => bounded memstore
	MaxEntries int
	Dir        string // "" => os.UserCacheDir
	Logger     Logger
	Hooks      Hooks
	Now        func() time.Time
}

// NewManager attempts a warm start from the named snapshot and falls back
// to an empty cache on any load failure. Only configuration errors (bad
// lifetime, missing codec) are returned.
func NewManager[V any](opts ManagerOptions[V]) (*Manager[V], error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("snapcache: manager name is required")
	}

	copts := Options[string, V]{
		Lifetime:   opts.Lifetime,
		KeyCodec:   cd.String{},
		ValueCodec: opts.Codec,
		Store:      opts.Store,
		MaxEntries: opts.MaxEntries,
		Dir:        opts.Dir,
		Logger:     opts.Logger,
		Hooks:      opts.Hooks,
		Now:        opts.Now,
	}

	m := &Manager[V]{
		name:  opts.Name,
		dir:   opts.Dir,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}

	c, err := Load(opts.Name, copts)
	if err != nil {
		m.hooks.SnapshotLoadError(opts.Name, err)
		if !errors.Is(err, ErrSnapshotNotFound) {
			m.log.Warn("snapshot load failed; starting empty", Fields{"name": opts.Name, "err": err})
		}
		c, err = New(copts)
		if err != nil {
			return nil, err
		}
	}
	m.cache = c
	return m, nil
}

// Get delegates to the in-memory cache.
func (m *Manager[V]) Get(key string) (V, bool) { return m.cache.Get(key) }

// Set inserts into the in-memory cache, then persists best-effort.
func (m *Manager[V]) Set(key string, value V) {
	m.cache.Set(key, value)
	m.persist()
}

// Remove deletes a key with the same write-through persistence as Set.
func (m *Manager[V]) Remove(key string) {
	m.cache.Remove(key)
	m.persist()
}

// Purge empties the cache and deletes the snapshot file.
func (m *Manager[V]) Purge() {
	for _, k := range m.cache.Keys() {
		m.cache.Remove(k)
	}
	if err := RemoveFromDisk(m.name, m.dir); err != nil {
		m.log.Warn("snapshot remove failed", Fields{"name": m.name, "err": err})
	}
}

// Len reports the number of tracked keys.
func (m *Manager[V]) Len() int { return m.cache.Len() }

func (m *Manager[V]) Close() error { return m.cache.Close() }

func (m *Manager[V]) persist() {
	if err := m.cache.Save(m.name); err != nil {
		// memory stays authoritative; durability is best effort
		m.hooks.SnapshotSaveError(m.name, err)
		m.log.Warn("snapshot save failed", Fields{"name": m.name, "err": err})
	}
}
