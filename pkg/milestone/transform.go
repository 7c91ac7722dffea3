package milestone

import (
	"context"

	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
)

// Submitter receives extracted milestone rows. It is satisfied by
// dispatch.Dispatcher[*Milestone].
type Submitter interface {
	Submit(rec dispatch.Record[*Milestone])
}

var _ Submitter = (*dispatch.Dispatcher[*Milestone])(nil)

// Transform consumes tweet batches, extracts a milestone row from each
// record and forwards it downstream under the same acknowledgement
// handle. Records that fail to parse are failed here and dropped.
type Transform struct {
	extractor *Extractor
	next      Submitter
	log       *zap.Logger
}

var _ dispatch.BatchConsumer[Tweet] = (*Transform)(nil)

// NewTransform creates the tweet-to-milestone stage. A nil logger
// disables logging.
func NewTransform(extractor *Extractor, next Submitter, log *zap.Logger) *Transform {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transform{extractor: extractor, next: next, log: log}
}

// ExecuteBatch implements dispatch.BatchConsumer.
func (t *Transform) ExecuteBatch(_ context.Context, batch []dispatch.Record[Tweet]) error {
	for _, rec := range batch {
		row, err := t.extractor.Extract(rec.Value)
		if err != nil {
			t.log.Warn("dropping unparsable record",
				zap.String("hashtag", rec.Value.Hashtag),
				zap.Error(err))
			rec.Fail()
			continue
		}
		t.next.Submit(dispatch.NewRecord(row, rec.Acker()))
	}
	return nil
}
