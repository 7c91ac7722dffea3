package dispatch

import "errors"

var (
	ErrNilConsumer        = errors.New("batch consumer must not be nil")
	ErrAlreadyStarted     = errors.New("dispatcher already started")
	ErrNotRunning         = errors.New("dispatcher is not running")
	ErrUnknownAckStrategy = errors.New("unknown ack strategy")
)
