package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
)

// Writer indexes one batch of records with a single bulk request. It
// implements dispatch.BatchConsumer. The bulk API reports per-item
// outcomes, so acknowledgement here is per record: indexed records are
// acked, rejected ones are failed.
type Writer[T Model] struct {
	client ElasticClient
	index  string
	log    *zap.Logger
}

var _ dispatch.BatchConsumer[Model] = (*Writer[Model])(nil)

// NewWriter creates a bulk writer for the given index. A nil logger
// disables logging.
func NewWriter[T Model](client ElasticClient, index string, log *zap.Logger) *Writer[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer[T]{client: client, index: index, log: log}
}

// ExecuteBatch implements dispatch.BatchConsumer.
func (w *Writer[T]) ExecuteBatch(ctx context.Context, batch []dispatch.Record[T]) error {
	if len(batch) == 0 {
		return nil
	}

	body, err := w.bulkBody(batch)
	if err != nil {
		for _, rec := range batch {
			rec.Fail()
		}
		return err
	}

	res, err := esapi.BulkRequest{
		Index: w.index,
		Body:  body,
	}.Do(ctx, w.client)
	if err != nil {
		for _, rec := range batch {
			rec.Fail()
		}
		return errors.Wrapf(err, "bulk index batch of %d into %s", len(batch), w.index)
	}
	defer res.Body.Close()

	if res.IsError() {
		for _, rec := range batch {
			rec.Fail()
		}
		return fmt.Errorf("%w: %s", ErrBulkRequestFailed, res.Status())
	}

	return w.ackByItem(res.Body, batch)
}

// bulkBody renders the NDJSON action/document pairs for one batch.
func (w *Writer[T]) bulkBody(batch []dispatch.Record[T]) (io.Reader, error) {
	var buf bytes.Buffer
	for _, rec := range batch {
		meta := fmt.Sprintf(`{"index":{"_id":%q}}`, rec.Value.GetID())
		buf.WriteString(meta)
		buf.WriteByte('\n')

		doc, err := json.Marshal(rec.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
		}
		buf.Write(doc)
		buf.WriteByte('\n')
	}
	return &buf, nil
}

// ackByItem walks the bulk response items, which arrive in request order,
// and settles each record's acknowledgement handle.
func (w *Writer[T]) ackByItem(body io.Reader, batch []dispatch.Record[T]) error {
	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int    `json:"status"`
			Error  any    `json:"error"`
			ID     string `json:"_id"`
		} `json:"items"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		// Response consumed but undecodable; the write may have succeeded,
		// so leave the handles to the source's redelivery policy.
		for _, rec := range batch {
			rec.Fail()
		}
		return errors.Wrap(err, "decode bulk response")
	}

	if !parsed.Errors {
		for _, rec := range batch {
			rec.Ack()
		}
		return nil
	}

	rejected := 0
	for i, rec := range batch {
		if i >= len(parsed.Items) {
			rec.Fail()
			rejected++
			continue
		}
		ok := true
		for _, item := range parsed.Items[i] {
			if item.Status >= 300 {
				ok = false
			}
		}
		if ok {
			rec.Ack()
		} else {
			rec.Fail()
			rejected++
		}
	}

	w.log.Warn("bulk request had rejected items",
		zap.String("index", w.index),
		zap.Int("batch_size", len(batch)),
		zap.Int("rejected", rejected))
	return fmt.Errorf("%w: %d of %d items rejected", ErrBulkRequestFailed, rejected, len(batch))
}
