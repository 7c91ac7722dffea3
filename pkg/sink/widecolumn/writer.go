package widecolumn

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
	"github.com/batchline/batchline/pkg/timer"
)

// WriterConfig tunes how batches are written.
type WriterConfig struct {
	// Unlogged skips the coordinator batch log. Faster, but the batch is
	// no longer atomic across partitions.
	Unlogged bool
}

// Writer maps one batch of records into a single wide-column batch
// mutation. It implements dispatch.BatchConsumer for any Model type: on
// success every record in the batch is acknowledged, on failure every
// record is failed; per-record partial outcomes do not exist at the
// batch-mutation level.
type Writer[T Model] struct {
	session *gocql.Session
	cfg     WriterConfig
	log     *zap.Logger
	clock   timer.Timer

	stmtOnce sync.Once
	stmt     string
}

var _ dispatch.BatchConsumer[Model] = (*Writer[Model])(nil)

// NewWriter creates a batch writer on an established session. A nil logger
// disables logging; a nil clock uses the wall clock.
func NewWriter[T Model](session *gocql.Session, cfg WriterConfig, log *zap.Logger, clock timer.Timer) *Writer[T] {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = timer.Real{}
	}
	return &Writer[T]{
		session: session,
		cfg:     cfg,
		log:     log,
		clock:   clock,
	}
}

// ExecuteBatch implements dispatch.BatchConsumer.
func (w *Writer[T]) ExecuteBatch(ctx context.Context, batch []dispatch.Record[T]) error {
	if len(batch) == 0 {
		return nil
	}

	kind := gocql.LoggedBatch
	if w.cfg.Unlogged {
		kind = gocql.UnloggedBatch
	}

	b := w.session.NewBatch(kind).WithContext(ctx)
	now := w.clock.Now()
	for _, rec := range batch {
		model := rec.Value
		if ts, ok := any(model).(Timestamped); ok {
			ts.Touch(now)
		}
		b.Query(w.insertStatement(model), model.ColumnValues()...)
	}

	if err := w.session.ExecuteBatch(b); err != nil {
		for _, rec := range batch {
			rec.Fail()
		}
		return errors.Wrapf(err, "wide column batch of %d", len(batch))
	}

	for _, rec := range batch {
		rec.Ack()
	}
	w.log.Debug("wide column batch written", zap.Int("batch_size", len(batch)))
	return nil
}

// insertStatement builds the INSERT once; table and columns are fixed per
// model type.
func (w *Writer[T]) insertStatement(model T) string {
	w.stmtOnce.Do(func() {
		cols := model.ColumnNames()
		placeholders := make([]string, len(cols))
		for i := range cols {
			placeholders[i] = "?"
		}
		w.stmt = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			model.TableName(),
			strings.Join(cols, ", "),
			strings.Join(placeholders, ", "),
		)
	})
	return w.stmt
}
