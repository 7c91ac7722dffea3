package dispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/datastructs/queue"
)

// State describes the dispatcher lifecycle.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateStopRequested
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop_requested"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	// DefaultBatchMaxSize is the batch ceiling applied by
	// settings.Dispatcher when none is configured.
	DefaultBatchMaxSize = 3

	defaultQueueCapacity = 64
)

// Config holds the dispatcher configuration. It is read-only after Start.
type Config struct {
	// BatchMaxSize caps the number of records per batch when positive.
	// Zero or negative means "drain everything currently queued", i.e.
	// unbounded batches.
	BatchMaxSize int

	// AckStrategy is the initial acknowledgement strategy. It can still be
	// changed with SetAckStrategy until Start is called.
	AckStrategy AckStrategy
}

// Dispatcher accepts individually submitted records and hands them to a
// BatchConsumer in bounded batches formed on a single background worker.
//
// Submit never blocks and never fails; if producers outpace the consumer,
// the internal queue grows without bound. That is a deliberate trade-off
// inherited from the queue contract, not an oversight.
type Dispatcher[T any] struct {
	cfg      Config
	consumer BatchConsumer[T]
	queue    *queue.Unbounded[Record[T]]
	log      *zap.Logger

	strategy atomic.Uint32
	state    atomic.Int32

	mu     sync.Mutex // guards Start/Stop transitions
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a dispatcher that feeds batches to the given consumer. A nil
// logger disables logging.
func New[T any](consumer BatchConsumer[T], cfg Config, log *zap.Logger) (*Dispatcher[T], error) {
	if consumer == nil {
		return nil, ErrNilConsumer
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher[T]{
		cfg:      cfg,
		consumer: consumer,
		queue:    queue.NewUnbounded[Record[T]](defaultQueueCapacity),
		log:      log,
		done:     make(chan struct{}),
	}
	d.strategy.Store(uint32(cfg.AckStrategy))
	return d, nil
}

// AckStrategy returns the current acknowledgement strategy.
func (d *Dispatcher[T]) AckStrategy() AckStrategy {
	return AckStrategy(d.strategy.Load())
}

// SetAckStrategy changes the acknowledgement strategy. It must be called
// before Start; afterwards the strategy is immutable.
func (d *Dispatcher[T]) SetAckStrategy(s AckStrategy) error {
	if d.State() != StateNotStarted {
		return ErrAlreadyStarted
	}
	d.strategy.Store(uint32(s))
	return nil
}

// State returns the current lifecycle state.
func (d *Dispatcher[T]) State() State {
	return State(d.state.Load())
}

// Submit accepts one record for asynchronous batched processing. It is
// safe for any number of concurrent producers, never blocks, and never
// fails. Under AckOnReceive the record is acknowledged here, before it is
// queued.
func (d *Dispatcher[T]) Submit(rec Record[T]) {
	if d.AckStrategy() == AckOnReceive {
		rec.Ack()
	}
	d.queue.Enqueue(rec)
}

// Start launches the background worker. Starting an already started or
// stopped dispatcher returns ErrAlreadyStarted.
func (d *Dispatcher[T]) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.CompareAndSwap(int32(StateNotStarted), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go d.run(ctx)

	d.log.Info("dispatcher started",
		zap.Int("batch_max_size", d.cfg.BatchMaxSize),
		zap.Stringer("ack_strategy", d.AckStrategy()))
	return nil
}

// Stop requests worker termination and waits for it. The cancellation also
// wakes a worker blocked waiting for the first record of a batch, so Stop
// always returns even when the queue stays empty. A batch whose consumer
// call is in flight is allowed to finish first. Records still queued when
// the worker exits are dropped.
func (d *Dispatcher[T]) Stop() error {
	d.mu.Lock()
	if !d.state.CompareAndSwap(int32(StateRunning), int32(StateStopRequested)) {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.cancel()
	d.mu.Unlock()

	<-d.done
	d.state.Store(int32(StateStopped))

	if n := d.queue.Len(); n > 0 {
		d.log.Warn("dispatcher stopped with records still queued", zap.Int("dropped", n))
	} else {
		d.log.Info("dispatcher stopped")
	}
	return nil
}

// run is the worker loop: block for the first record, opportunistically
// drain what already accumulated, dispatch, repeat.
func (d *Dispatcher[T]) run(ctx context.Context) {
	defer close(d.done)

	// The consumer keeps a context that survives Stop so an in-flight
	// batch write is never aborted halfway.
	consumerCtx := context.WithoutCancel(ctx)

	for {
		first, ok := d.take(ctx)
		if !ok {
			return
		}

		batch := d.drain(first)
		if err := d.consumer.ExecuteBatch(consumerCtx, batch); err != nil {
			// Failure handling, including per-record Fail calls, belongs
			// to the consumer. The worker's only obligation is to keep
			// looping.
			d.log.Error("batch consumer failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
		}
	}
}

// take blocks until a record is available or the context is canceled.
func (d *Dispatcher[T]) take(ctx context.Context) (Record[T], bool) {
	for {
		if rec, ok := d.queue.TryDequeue(); ok {
			return rec, true
		}

		select {
		case <-ctx.Done():
			var zero Record[T]
			return zero, false
		case <-d.queue.Ready():
			// Signals coalesce; re-check the queue.
		}
	}
}

// drain builds a batch from the first record plus whatever already sits in
// the queue, up to the configured ceiling. It never waits for more records
// to arrive: worst-case per-record latency is bounded by the time to
// process one batch, not the time to fill one.
func (d *Dispatcher[T]) drain(first Record[T]) []Record[T] {
	max := d.cfg.BatchMaxSize

	var batch []Record[T]
	if max > 0 {
		batch = make([]Record[T], 0, max)
	} else {
		batch = make([]Record[T], 0, d.queue.Len()+1)
	}
	batch = append(batch, first)

	for max <= 0 || len(batch) < max {
		rec, ok := d.queue.TryDequeue()
		if !ok {
			break
		}
		batch = append(batch, rec)
	}
	return batch
}
