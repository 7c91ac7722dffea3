package queue

// Queue is a generic interface for unbounded FIFO queues.
type Queue[T any] interface {
	// Enqueue adds an item to the tail of the queue. It always succeeds
	// and never blocks the caller.
	Enqueue(item T)

	// TryDequeue removes and returns the item at the head of the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	TryDequeue() (T, bool)

	// Len returns the number of items currently queued.
	Len() int

	// Ready returns a channel that receives a signal after an Enqueue.
	// The channel has a buffer of one, so signals coalesce under load;
	// consumers must keep calling TryDequeue until it reports empty
	// before waiting on Ready again.
	Ready() <-chan struct{}
}
