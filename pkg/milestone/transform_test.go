package milestone

import (
	"context"
	"sync"
	"testing"

	"github.com/batchline/batchline/pkg/dispatch"
)

type recordingSubmitter struct {
	mu   sync.Mutex
	recs []dispatch.Record[*Milestone]
}

func (s *recordingSubmitter) Submit(rec dispatch.Record[*Milestone]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
}

type countingAcker struct {
	acked  int
	failed int
}

func (a *countingAcker) Ack()  { a.acked++ }
func (a *countingAcker) Fail() { a.failed++ }

func TestTransformForwardsUnderSameHandle(t *testing.T) {
	next := &recordingSubmitter{}
	tr := NewTransform(newTestExtractor(t), next, nil)

	acker := &countingAcker{}
	batch := []dispatch.Record[Tweet]{
		dispatch.NewRecord(Tweet{
			Hashtag:   "gopher",
			CreatedAt: "Wed Oct 10 20:19:24 +0000 2018",
		}, acker),
	}

	if err := tr.ExecuteBatch(context.Background(), batch); err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}

	if len(next.recs) != 1 {
		t.Fatalf("forwarded %d records, want 1", len(next.recs))
	}
	if next.recs[0].Value.Hashtag != "gopher" {
		t.Errorf("forwarded hashtag = %q", next.recs[0].Value.Hashtag)
	}

	// The transform never acks; the handle stays live for the sink.
	if acker.acked != 0 || acker.failed != 0 {
		t.Errorf("handle touched: acked=%d failed=%d", acker.acked, acker.failed)
	}
	next.recs[0].Ack()
	if acker.acked != 1 {
		t.Errorf("forwarded record does not share the handle")
	}
}

func TestTransformFailsUnparsableRecords(t *testing.T) {
	next := &recordingSubmitter{}
	tr := NewTransform(newTestExtractor(t), next, nil)

	good := &countingAcker{}
	bad := &countingAcker{}
	batch := []dispatch.Record[Tweet]{
		dispatch.NewRecord(Tweet{Hashtag: "bad", CreatedAt: "not a date"}, bad),
		dispatch.NewRecord(Tweet{
			Hashtag:   "good",
			CreatedAt: "Wed Oct 10 20:19:24 +0000 2018",
		}, good),
	}

	if err := tr.ExecuteBatch(context.Background(), batch); err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}

	if bad.failed != 1 {
		t.Errorf("bad record failed %d times, want 1", bad.failed)
	}
	if len(next.recs) != 1 || next.recs[0].Value.Hashtag != "good" {
		t.Errorf("expected only the good record forwarded, got %d", len(next.recs))
	}
}
