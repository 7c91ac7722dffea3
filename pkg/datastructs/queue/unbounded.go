package queue

import (
	"sync"

	"github.com/batchline/batchline/pkg/utils"
)

var _ Queue[int] = (*Unbounded[int])(nil)

const minCapacity = 16

// Unbounded is a mutex-protected, growable ring buffer FIFO. Any number of
// producers may Enqueue concurrently; items are linearized into a single
// total order. Enqueue never fails and never blocks beyond the mutex.
type Unbounded[T any] struct {
	mu    sync.Mutex
	buf   []T
	head  int // index of the oldest item
	size  int
	ready chan struct{}
}

// NewUnbounded creates a queue with the given initial capacity, rounded up
// to a power of two. The capacity only sizes the first allocation; the
// buffer grows without bound as needed.
func NewUnbounded[T any](initialCapacity int) *Unbounded[T] {
	if initialCapacity < minCapacity {
		initialCapacity = minCapacity
	}
	initialCapacity = utils.CeilToPowerOfTwo(initialCapacity)

	return &Unbounded[T]{
		buf:   make([]T, initialCapacity),
		ready: make(chan struct{}, 1),
	}
}

// Enqueue adds an item at the tail and signals the ready channel.
func (q *Unbounded[T]) Enqueue(item T) {
	q.mu.Lock()
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)&(len(q.buf)-1)] = item
	q.size++
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryDequeue removes the head item without blocking.
func (q *Unbounded[T]) TryDequeue() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return zero, false
	}

	item := q.buf[q.head]
	q.buf[q.head] = zero // release the reference
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.size--
	return item, true
}

// Len returns the number of items currently queued.
func (q *Unbounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Ready returns the wakeup channel. See Queue.Ready for the coalescing
// contract.
func (q *Unbounded[T]) Ready() <-chan struct{} {
	return q.ready
}

// grow doubles the buffer, unwrapping the ring so the oldest item lands at
// index zero. Caller must hold q.mu.
func (q *Unbounded[T]) grow() {
	next := make([]T, len(q.buf)*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}
