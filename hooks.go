package snapcache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking: EntryEvicted and
// EntryExpired fire on hot paths, EntryEvicted possibly from a goroutine
// owned by the backing store.
type Hooks interface {
	// The backing store dropped an entry out of band (capacity or
	// memory pressure) and the tracker was reconciled.
	EntryEvicted(key any)

	// A read found the entry past its deadline and removed it.
	EntryExpired(key any)

	// The backing store refused an insert under pressure; the key is
	// not tracked.
	SetRejected(key any)

	// A snapshot was written; entries is the number persisted after
	// expiry filtering.
	SnapshotSaved(name string, entries int)

	// Best-effort persistence failures absorbed by the manager.
	SnapshotSaveError(name string, err error)
	SnapshotLoadError(name string, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) EntryEvicted(any)                 {}
func (NopHooks) EntryExpired(any)                 {}
func (NopHooks) SetRejected(any)                  {}
func (NopHooks) SnapshotSaved(string, int)        {}
func (NopHooks) SnapshotSaveError(string, error)  {}
func (NopHooks) SnapshotLoadError(string, error)  {}
