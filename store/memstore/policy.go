package memstore

// Policy decides which key to give up when the store is at capacity.
// The store notifies it of reads, writes and explicit removals so it can
// keep whatever ordering it needs; the store itself stays policy-agnostic.
// Policies are not safe for concurrent use - the store serializes access.
type Policy[K comparable] interface {
	// OnGet records a read of key. Recency/frequency policies care;
	// FIFO ignores it.
	OnGet(key K)

	// OnPut records an insert of key. Already-tracked keys are ignored.
	OnPut(key K)

	// Remove forgets a key that was explicitly deleted (not evicted),
	// keeping the policy's bookkeeping consistent with the store.
	Remove(key K)

	// Evict picks the key to drop next and forgets it.
	// ok is false when nothing is tracked.
	Evict() (key K, ok bool)
}

// PolicyType selects one of the built-in eviction policies.
type PolicyType string

const (
	// LRU evicts the key unread for the longest time.
	LRU PolicyType = "LRU"
	// LFU evicts the key with the fewest recorded reads.
	LFU PolicyType = "LFU"
	// FIFO evicts the oldest inserted key regardless of access.
	FIFO PolicyType = "FIFO"
)

func newPolicy[K comparable](t PolicyType) Policy[K] {
	switch t {
	case LFU:
		return newLFU[K]()
	case FIFO:
		return newFIFO[K]()
	default:
		return newLRU[K]()
	}
}
