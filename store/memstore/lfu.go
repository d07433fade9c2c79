package memstore

// lfu buckets keys by access count. minFreq points at the lowest
// populated bucket so eviction avoids scanning.
type lfuNode[K comparable] struct {
	key  K
	freq int
}

type lfu[K comparable] struct {
	nodes   map[K]*lfuNode[K]
	buckets map[int]map[K]*lfuNode[K]
	minFreq int
}

func newLFU[K comparable]() *lfu[K] {
	return &lfu[K]{
		nodes:   make(map[K]*lfuNode[K]),
		buckets: make(map[int]map[K]*lfuNode[K]),
	}
}

func (l *lfu[K]) OnGet(k K) {
	n, ok := l.nodes[k]
	if !ok {
		return
	}
	old := n.freq
	n.freq++
	delete(l.buckets[old], k)
	if len(l.buckets[old]) == 0 {
		delete(l.buckets, old)
		if l.minFreq == old {
			l.minFreq++
		}
	}
	l.bucket(n.freq)[k] = n
}

func (l *lfu[K]) OnPut(k K) {
	if _, ok := l.nodes[k]; ok {
		return
	}
	n := &lfuNode[K]{key: k, freq: 1}
	l.nodes[k] = n
	l.bucket(1)[k] = n
	l.minFreq = 1
}

func (l *lfu[K]) Remove(k K) {
	n, ok := l.nodes[k]
	if !ok {
		return
	}
	delete(l.buckets[n.freq], k)
	if len(l.buckets[n.freq]) == 0 {
		delete(l.buckets, n.freq)
	}
	delete(l.nodes, k)
}

// Evict drops an arbitrary member of the lowest-frequency bucket.
// Removals can leave minFreq pointing at a drained bucket, so rescan
// when that happens; bucket counts stay small in practice.
func (l *lfu[K]) Evict() (K, bool) {
	var zero K
	if len(l.nodes) == 0 {
		return zero, false
	}
	if len(l.buckets[l.minFreq]) == 0 {
		first := true
		for f := range l.buckets {
			if first || f < l.minFreq {
				l.minFreq = f
				first = false
			}
		}
	}
	for k := range l.buckets[l.minFreq] {
		l.Remove(k)
		return k, true
	}
	return zero, false
}

func (l *lfu[K]) bucket(freq int) map[K]*lfuNode[K] {
	b, ok := l.buckets[freq]
	if !ok {
		b = make(map[K]*lfuNode[K])
		l.buckets[freq] = b
	}
	return b
}
