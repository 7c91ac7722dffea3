package dispatch

// Acker is the per-record acknowledgement handle supplied by the record
// source. Ack signals the record was accepted or durably processed; Fail
// signals it should be retried or surfaced by the source. Implementations
// must tolerate being called at most once from a single goroutine at a
// time; the dispatcher itself never calls either method.
type Acker interface {
	Ack()
	Fail()
}

// Record is one unit of input data together with its acknowledgement
// handle. The payload is opaque to the dispatcher and passed through to
// the batch consumer unchanged.
type Record[T any] struct {
	Value T

	acker Acker
}

// NewRecord wraps a payload and its acknowledgement handle. A nil acker is
// allowed; Ack and Fail become no-ops.
func NewRecord[T any](value T, acker Acker) Record[T] {
	return Record[T]{Value: value, acker: acker}
}

// Ack acknowledges the record to its source.
func (r Record[T]) Ack() {
	if r.acker != nil {
		r.acker.Ack()
	}
}

// Fail negatively acknowledges the record to its source.
func (r Record[T]) Fail() {
	if r.acker != nil {
		r.acker.Fail()
	}
}

// Acker exposes the acknowledgement handle so transforms can re-wrap the
// payload under the same handle.
func (r Record[T]) Acker() Acker {
	return r.acker
}
