package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
)

// KeyValuer is implemented by models that know their own cache key. The
// value written under the key is the JSON encoding of the model.
type KeyValuer interface {
	RedisKey() string
}

// Writer turns one batch of records into a single pipelined round trip of
// SET commands. It implements dispatch.BatchConsumer; on success all
// records are acknowledged, on failure all are failed.
type Writer[T KeyValuer] struct {
	client *Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ dispatch.BatchConsumer[KeyValuer] = (*Writer[KeyValuer])(nil)

// NewWriter creates a pipelined batch writer. A zero ttl stores keys
// without expiry. A nil logger disables logging.
func NewWriter[T KeyValuer](client *Client, ttl time.Duration, log *zap.Logger) *Writer[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer[T]{client: client, ttl: ttl, log: log}
}

// ExecuteBatch implements dispatch.BatchConsumer.
func (w *Writer[T]) ExecuteBatch(ctx context.Context, batch []dispatch.Record[T]) error {
	if len(batch) == 0 {
		return nil
	}

	pipe := w.client.Redis().Pipeline()
	for _, rec := range batch {
		value, err := json.Marshal(rec.Value)
		if err != nil {
			for _, r := range batch {
				r.Fail()
			}
			return errors.Wrapf(err, "marshal value for key %s", rec.Value.RedisKey())
		}
		pipe.Set(ctx, rec.Value.RedisKey(), value, w.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		for _, rec := range batch {
			rec.Fail()
		}
		return errors.Wrapf(ErrBatchWriteFailed, "pipeline of %d sets: %v", len(batch), err)
	}

	for _, rec := range batch {
		rec.Ack()
	}
	w.log.Debug("key batch written",
		zap.Int("batch_size", len(batch)),
		zap.Duration("ttl", w.ttl))
	return nil
}
