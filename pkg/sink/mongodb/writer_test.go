package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/batchline/batchline/pkg/dispatch"
	"github.com/batchline/batchline/pkg/settings"
)

const (
	mongoImage = "mongo:6"
	mongoPort  = "27017/tcp"
)

type TestDoc struct {
	Name  string `bson:"name"`
	Value int    `bson:"value"`
}

type countingAcker struct {
	acks  atomic.Int32
	fails atomic.Int32
}

func (a *countingAcker) Ack()  { a.acks.Add(1) }
func (a *countingAcker) Fail() { a.fails.Add(1) }

func TestWriter_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	if !isDockerRunning(ctx) {
		t.Skip("Docker is not running, skipping integration test")
	}

	uri, terminate, err := setupMongoDBContainer(ctx)
	if err != nil {
		t.Fatalf("failed to setup mongodb container: %v", err)
	}
	defer terminate()

	parsedURI, _ := url.Parse(uri)
	port, _ := strconv.Atoi(parsedURI.Port())

	cfg := &settings.MongoDB{
		Host:            parsedURI.Hostname(),
		Port:            port,
		Database:        "testdb",
		Timeout:         5,
		MaxPoolSize:     10,
		MinPoolSize:     1,
		MaxConnIdleTime: 60,
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer client.Close(ctx)

	coll := client.Collection("test_collection")
	writer := NewWriter[*TestDoc](coll, nil)

	t.Run("WriteBatch", func(t *testing.T) {
		acker := &countingAcker{}
		batch := []dispatch.Record[*TestDoc]{
			dispatch.NewRecord(&TestDoc{Name: "first", Value: 1}, acker),
			dispatch.NewRecord(&TestDoc{Name: "second", Value: 2}, acker),
		}

		if err := writer.ExecuteBatch(ctx, batch); err != nil {
			t.Fatalf("failed to write batch: %v", err)
		}
		if got := acker.acks.Load(); got != 2 {
			t.Errorf("expected 2 acks, got %d", got)
		}
		if got := acker.fails.Load(); got != 0 {
			t.Errorf("expected 0 fails, got %d", got)
		}

		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("failed to count documents: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 documents, got %d", count)
		}
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		if err := writer.ExecuteBatch(ctx, nil); err != nil {
			t.Fatalf("empty batch must be a no-op, got %v", err)
		}
	})
}

func setupMongoDBContainer(ctx context.Context) (string, func(), error) {
	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{mongoPort},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, mongoPort)
	if err != nil {
		container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("failed to terminate container: %v\n", err)
		}
	}

	return fmt.Sprintf("mongodb://%s:%d", host, mappedPort.Int()), terminate, nil
}

func isDockerRunning(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "docker", "info")
	if err := cmd.Run(); err != nil {
		return false
	}
	return true
}
