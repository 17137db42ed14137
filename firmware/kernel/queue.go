package kernel

import "sync/atomic"

// QueueSlots is the capacity of every Queue.
const QueueSlots = 8

// Queue is a fixed-size FIFO between one producing context and one
// consuming task. No allocations; never blocks.
//
// Producers in different contexts must be serialized by the caller (in this
// firmware all producers are tasks, which never preempt each other).
type Queue[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [QueueSlots]T
}

// TrySend enqueues v, returning false if the queue is full.
func (q *Queue[T]) TrySend(v T) bool {
	head := q.head.Load()
	tail := q.tail.Load()
	if head-tail >= QueueSlots {
		return false
	}
	q.slots[head%QueueSlots] = v
	q.head.Store(head + 1)
	return true
}

// TryRecv dequeues one value, returning false if empty.
func (q *Queue[T]) TryRecv() (T, bool) {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail == head {
		var zero T
		return zero, false
	}
	v := q.slots[tail%QueueSlots]
	q.tail.Store(tail + 1)
	return v, true
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return int(q.head.Load() - q.tail.Load())
}

// Reset drops every queued value.
func (q *Queue[T]) Reset() {
	q.tail.Store(q.head.Load())
}
