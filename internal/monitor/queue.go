package monitor

import (
	"container/list"
	"sync"
)

// ChangeKind classifies a display topology notification.
type ChangeKind int

const (
	DisplayChanged ChangeKind = iota
	DPIChanged
)

// Change is one display notification.
type Change struct {
	Kind      ChangeKind
	MonitorID string
}

// Queue is a bounded, coalescing buffer of display changes. Window threads
// push from OS callbacks; the control loop drains whole batches. Duplicate
// pending changes collapse into one, and when the bound is hit the oldest
// entry is dropped, so a storm of notifications can never grow the queue
// or block the pusher.
type Queue struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	pending map[Change]*list.Element
	wake    chan struct{}
}

func NewQueue(maxSize int) *Queue {
	if maxSize <= 0 {
		maxSize = 16
	}
	return &Queue{
		maxSize: maxSize,
		order:   list.New(),
		pending: make(map[Change]*list.Element),
		wake:    make(chan struct{}, 1),
	}
}

// Wake fires after a Push into an empty-or-quiet queue. Receiving one
// wakeup guarantees at least one Drain-able change.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Push records a change. Never blocks.
func (q *Queue) Push(c Change) {
	q.mu.Lock()
	if elem, dup := q.pending[c]; dup {
		q.order.MoveToBack(elem)
		q.mu.Unlock()
		return
	}
	if q.order.Len() >= q.maxSize {
		oldest := q.order.Front()
		q.order.Remove(oldest)
		delete(q.pending, oldest.Value.(Change))
	}
	q.pending[c] = q.order.PushBack(c)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain removes and returns all pending changes in arrival order.
func (q *Queue) Drain() []Change {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.order.Len() == 0 {
		return nil
	}
	out := make([]Change, 0, q.order.Len())
	for e := q.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Change))
	}
	q.order.Init()
	q.pending = make(map[Change]*list.Element)
	return out
}

// Len reports the number of pending changes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.order.Len()
}
