package elasticsearch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/batchline/batchline/pkg/dispatch"
)

// fakeTransport replays a canned bulk response and captures the request
// body for assertions.
type fakeTransport struct {
	status int
	body   string
	err    error

	lastBody string
}

func (f *fakeTransport) Perform(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		f.lastBody = string(raw)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

type countingAcker struct {
	acks  atomic.Int32
	fails atomic.Int32
}

func (a *countingAcker) Ack()  { a.acks.Add(1) }
func (a *countingAcker) Fail() { a.fails.Add(1) }

type testDoc struct {
	BaseModel
	Name string `json:"name"`
}

func newBatch(ackers []*countingAcker, names ...string) []dispatch.Record[*testDoc] {
	batch := make([]dispatch.Record[*testDoc], len(names))
	for i, name := range names {
		doc := &testDoc{BaseModel: NewBaseModel("id-" + name), Name: name}
		batch[i] = dispatch.NewRecord(doc, ackers[i])
	}
	return batch
}

func TestWriter_BulkSuccess(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body:   `{"errors":false,"items":[{"index":{"status":201}},{"index":{"status":201}}]}`,
	}
	w := NewWriter[*testDoc](transport, "test-index", nil)

	ackers := []*countingAcker{{}, {}}
	batch := newBatch(ackers, "one", "two")

	if err := w.ExecuteBatch(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, a := range ackers {
		if a.acks.Load() != 1 || a.fails.Load() != 0 {
			t.Errorf("record %d: expected 1 ack / 0 fails, got %d/%d", i, a.acks.Load(), a.fails.Load())
		}
	}

	// NDJSON: one action line and one document line per record.
	lines := strings.Split(strings.TrimSpace(transport.lastBody), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 NDJSON lines, got %d: %q", len(lines), transport.lastBody)
	}
	if !strings.Contains(lines[0], `"_id":"id-one"`) {
		t.Errorf("first action line missing id: %s", lines[0])
	}
}

func TestWriter_PartialRejection(t *testing.T) {
	transport := &fakeTransport{
		status: http.StatusOK,
		body:   `{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":429,"error":{"type":"es_rejected_execution_exception"}}}]}`,
	}
	w := NewWriter[*testDoc](transport, "test-index", nil)

	ackers := []*countingAcker{{}, {}}
	batch := newBatch(ackers, "kept", "rejected")

	err := w.ExecuteBatch(context.Background(), batch)
	if !errors.Is(err, ErrBulkRequestFailed) {
		t.Fatalf("expected ErrBulkRequestFailed, got %v", err)
	}

	if ackers[0].acks.Load() != 1 || ackers[0].fails.Load() != 0 {
		t.Errorf("indexed record should be acked, got %d/%d", ackers[0].acks.Load(), ackers[0].fails.Load())
	}
	if ackers[1].acks.Load() != 0 || ackers[1].fails.Load() != 1 {
		t.Errorf("rejected record should be failed, got %d/%d", ackers[1].acks.Load(), ackers[1].fails.Load())
	}
}

func TestWriter_TransportError(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	w := NewWriter[*testDoc](transport, "test-index", nil)

	ackers := []*countingAcker{{}}
	batch := newBatch(ackers, "only")

	if err := w.ExecuteBatch(context.Background(), batch); err == nil {
		t.Fatal("expected error from failed transport")
	}
	if ackers[0].fails.Load() != 1 {
		t.Errorf("expected record failed on transport error, got %d", ackers[0].fails.Load())
	}
}

func TestWriter_EmptyBatch(t *testing.T) {
	transport := &fakeTransport{status: http.StatusOK, body: `{}`}
	w := NewWriter[*testDoc](transport, "test-index", nil)

	if err := w.ExecuteBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
	if transport.lastBody != "" {
		t.Error("no request should be performed for an empty batch")
	}
}
