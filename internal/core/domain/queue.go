package domain

import "iter"

// BoundedQueue is a fixed-capacity FIFO backed by a ring buffer. Enqueue and
// Dequeue are O(1) and memory never grows past the capacity given to
// NewBoundedQueue.
//
// A BoundedQueue is not safe for concurrent use.
type BoundedQueue[T any] struct {
	items []T
	head  int
	tail  int
	count int
}

func NewBoundedQueue[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity <= 0 {
		return nil, ValidationError{Field: "capacity", Msg: "queue capacity must be positive"}
	}

	return &BoundedQueue[T]{items: make([]T, capacity)}, nil
}

// Enqueue appends item at the tail. The queue is left unchanged when full.
func (q *BoundedQueue[T]) Enqueue(item T) error {
	if q.IsFull() {
		return ErrQueueFull
	}

	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	q.count++

	return nil
}

// Dequeue removes and returns the head.
func (q *BoundedQueue[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrQueueEmpty
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--

	return item, nil
}

func (q *BoundedQueue[T]) Len() int { return q.count }

func (q *BoundedQueue[T]) Cap() int { return len(q.items) }

func (q *BoundedQueue[T]) IsEmpty() bool { return q.count == 0 }

func (q *BoundedQueue[T]) IsFull() bool { return q.count == len(q.items) }

// All yields the queued items from head to tail without removing them. Each
// call starts a fresh pass. The queue must not be mutated while ranging.
func (q *BoundedQueue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		idx := q.head
		for i := 0; i < q.count; i++ {
			if !yield(q.items[idx]) {
				return
			}
			idx = (idx + 1) % len(q.items)
		}
	}
}
