package dispatch

import "context"

// BatchConsumer is the contract implemented by the application receiving
// batches. ExecuteBatch is invoked once per formed batch, synchronously on
// the single worker goroutine; the next batch is not formed until the call
// returns. Records within the batch are in queue removal order.
//
// The dispatcher does not retry, re-queue, or acknowledge records of a
// failed batch; error handling, including per-record Fail calls, is
// entirely the consumer's responsibility.
type BatchConsumer[T any] interface {
	ExecuteBatch(ctx context.Context, batch []Record[T]) error
}

// ConsumerFunc adapts a plain function to the BatchConsumer interface.
type ConsumerFunc[T any] func(ctx context.Context, batch []Record[T]) error

func (f ConsumerFunc[T]) ExecuteBatch(ctx context.Context, batch []Record[T]) error {
	return f(ctx, batch)
}
