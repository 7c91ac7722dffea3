package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
)

// Writer turns one batch of records into a single InsertMany. It
// implements dispatch.BatchConsumer; on success all records are
// acknowledged, on failure all are failed. The insert is ordered so
// documents land in queue removal order.
type Writer[T any] struct {
	coll *mongo.Collection
	log  *zap.Logger
}

var _ dispatch.BatchConsumer[any] = (*Writer[any])(nil)

// NewWriter creates a batch writer on the given collection. A nil logger
// disables logging.
func NewWriter[T any](coll *mongo.Collection, log *zap.Logger) *Writer[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer[T]{coll: coll, log: log}
}

// ExecuteBatch implements dispatch.BatchConsumer.
func (w *Writer[T]) ExecuteBatch(ctx context.Context, batch []dispatch.Record[T]) error {
	if len(batch) == 0 {
		return nil
	}

	docs := make([]any, len(batch))
	for i, rec := range batch {
		docs[i] = rec.Value
	}

	_, err := w.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		for _, rec := range batch {
			rec.Fail()
		}
		return errors.Wrapf(err, "insert batch of %d into %s", len(batch), w.coll.Name())
	}

	for _, rec := range batch {
		rec.Ack()
	}
	w.log.Debug("document batch inserted",
		zap.String("collection", w.coll.Name()),
		zap.Int("batch_size", len(batch)))
	return nil
}
