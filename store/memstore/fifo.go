package memstore

// fifo evicts in insertion order. The set guards against duplicate queue
// entries when a key is re-inserted.
type fifo[K comparable] struct {
	queue []K
	set   map[K]struct{}
}

func newFIFO[K comparable]() *fifo[K] {
	return &fifo[K]{set: make(map[K]struct{})}
}

func (f *fifo[K]) OnGet(K) {}

func (f *fifo[K]) OnPut(k K) {
	if _, ok := f.set[k]; ok {
		return
	}
	f.queue = append(f.queue, k)
	f.set[k] = struct{}{}
}

func (f *fifo[K]) Remove(k K) {
	if _, ok := f.set[k]; !ok {
		return
	}
	delete(f.set, k)
	for i, v := range f.queue {
		if v == k {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
}

func (f *fifo[K]) Evict() (K, bool) {
	var zero K
	if len(f.queue) == 0 {
		return zero, false
	}
	k := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.set, k)
	return k, true
}
