package memstore

// lru tracks recency with a doubly-linked list over map-addressed nodes.
// Head is most recently used, tail is the eviction candidate.
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

type lru[K comparable] struct {
	nodes map[K]*lruNode[K]
	head  *lruNode[K]
	tail  *lruNode[K]
}

func newLRU[K comparable]() *lru[K] {
	return &lru[K]{nodes: make(map[K]*lruNode[K])}
}

func (l *lru[K]) OnGet(k K) {
	if n, ok := l.nodes[k]; ok {
		l.unlink(n)
		l.pushFront(n)
	}
}

func (l *lru[K]) OnPut(k K) {
	if _, ok := l.nodes[k]; ok {
		return
	}
	n := &lruNode[K]{key: k}
	l.nodes[k] = n
	l.pushFront(n)
}

func (l *lru[K]) Remove(k K) {
	if n, ok := l.nodes[k]; ok {
		l.unlink(n)
		delete(l.nodes, k)
	}
}

func (l *lru[K]) Evict() (K, bool) {
	var zero K
	if l.tail == nil {
		return zero, false
	}
	k := l.tail.key
	l.unlink(l.tail)
	delete(l.nodes, k)
	return k, true
}

func (l *lru[K]) pushFront(n *lruNode[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

func (l *lru[K]) unlink(n *lruNode[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
}
