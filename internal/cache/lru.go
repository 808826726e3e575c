package cache

// lruNode is one entry in an lruList. It carries its key so eviction
// can delete from the owning map in O(1).
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a doubly linked recency list, head most recent. It is
// not safe for concurrent use; callers synchronize.
type lruList[K comparable] struct {
	head, tail *lruNode[K]
	n          int
}

func newLRUList[K comparable]() *lruList[K] {
	return &lruList[K]{}
}

// Len returns the number of entries in the list.
func (l *lruList[K]) Len() int {
	return l.n
}

// PushFront adds a new entry at the head and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.attach(n)
	return n
}

// MoveToFront marks an existing node as most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || n == l.head {
		return
	}
	l.unlink(n)
	l.attach(n)
}

// Remove takes a node out of the list.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil {
		return
	}
	l.unlink(n)
}

// RemoveOldest removes the tail and returns its key, or false when
// the list is empty.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

// Clear empties the list.
func (l *lruList[K]) Clear() {
	l.head = nil
	l.tail = nil
	l.n = 0
}

func (l *lruList[K]) attach(n *lruNode[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.n++
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
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
	n.prev = nil
	n.next = nil
	l.n--
}
