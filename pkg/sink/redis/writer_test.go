package redis

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisV9 "github.com/redis/go-redis/v9"

	"github.com/batchline/batchline/pkg/dispatch"
)

type counterModel struct {
	Hashtag string `json:"hashtag"`
	Count   int64  `json:"count"`
}

func (m counterModel) RedisKey() string {
	return "counter:" + m.Hashtag
}

type testAcker struct {
	acked  atomic.Int32
	failed atomic.Int32
}

func (a *testAcker) Ack()  { a.acked.Add(1) }
func (a *testAcker) Fail() { a.failed.Add(1) }

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := &Client{
		client: redisV9.NewClient(&redisV9.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestWriterExecuteBatch(t *testing.T) {
	client, mr := setupTestClient(t)
	writer := NewWriter[counterModel](client, 0, nil)

	acker := &testAcker{}
	batch := []dispatch.Record[counterModel]{
		dispatch.NewRecord(counterModel{Hashtag: "gopher", Count: 7}, acker),
		dispatch.NewRecord(counterModel{Hashtag: "batch", Count: 3}, acker),
	}

	if err := writer.ExecuteBatch(context.Background(), batch); err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}

	raw, err := mr.Get("counter:gopher")
	if err != nil {
		t.Fatalf("get counter:gopher: %v", err)
	}
	var got counterModel
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal stored value: %v", err)
	}
	if got.Count != 7 {
		t.Errorf("stored count = %d, want 7", got.Count)
	}

	if n := acker.acked.Load(); n != 2 {
		t.Errorf("acked = %d, want 2", n)
	}
	if n := acker.failed.Load(); n != 0 {
		t.Errorf("failed = %d, want 0", n)
	}
}

func TestWriterTTL(t *testing.T) {
	client, mr := setupTestClient(t)
	writer := NewWriter[counterModel](client, time.Minute, nil)

	batch := []dispatch.Record[counterModel]{
		dispatch.NewRecord(counterModel{Hashtag: "ttl", Count: 1}, nil),
	}
	if err := writer.ExecuteBatch(context.Background(), batch); err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}

	if ttl := mr.TTL("counter:ttl"); ttl != time.Minute {
		t.Errorf("ttl = %v, want %v", ttl, time.Minute)
	}
}

func TestWriterFailsBatchOnBrokenConnection(t *testing.T) {
	client, mr := setupTestClient(t)
	writer := NewWriter[counterModel](client, 0, nil)
	mr.Close()

	acker := &testAcker{}
	batch := []dispatch.Record[counterModel]{
		dispatch.NewRecord(counterModel{Hashtag: "down", Count: 1}, acker),
		dispatch.NewRecord(counterModel{Hashtag: "down2", Count: 2}, acker),
	}

	if err := writer.ExecuteBatch(context.Background(), batch); err == nil {
		t.Fatal("expected error on closed server")
	}
	if n := acker.failed.Load(); n != 2 {
		t.Errorf("failed = %d, want 2", n)
	}
	if n := acker.acked.Load(); n != 0 {
		t.Errorf("acked = %d, want 0", n)
	}
}

func TestWriterEmptyBatch(t *testing.T) {
	client, _ := setupTestClient(t)
	writer := NewWriter[counterModel](client, 0, nil)

	if err := writer.ExecuteBatch(context.Background(), nil); err != nil {
		t.Fatalf("ExecuteBatch on empty batch: %v", err)
	}
}
