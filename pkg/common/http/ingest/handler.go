package ingest

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/common/http/handler"
	"github.com/batchline/batchline/pkg/dispatch"
)

// Submitter accepts records for asynchronous batching. It is satisfied
// by dispatch.Dispatcher[T].
type Submitter[T any] interface {
	Submit(rec dispatch.Record[T])
}

// Result is the reply body for an accepted record
type Result struct {
	Queued bool `json:"queued"`
}

// Handler exposes a dispatcher as an HTTP producer endpoint. Bound and
// validated request bodies are submitted as records without an
// acknowledgement handle; the reply is 202 since the batch write happens
// later.
type Handler[T any] struct {
	submitter Submitter[T]
	log       *zap.Logger
}

// NewHandler creates the endpoint. A nil logger disables logging.
func NewHandler[T any](submitter Submitter[T], log *zap.Logger) *Handler[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler[T]{submitter: submitter, log: log}
}

// Register mounts the submit route on the given router
func (h *Handler[T]) Register(r gin.IRouter, path string) {
	r.POST(path, handler.WrapAccepted(h.submit))
}

func (h *Handler[T]) submit(_ context.Context, req *T) (Result, error) {
	h.submitter.Submit(dispatch.NewRecord(*req, nil))
	return Result{Queued: true}, nil
}
