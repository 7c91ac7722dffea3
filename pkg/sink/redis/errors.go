package redis

import "errors"

var (
	// ErrConnectionFailed is returned when the Redis connection cannot be established
	ErrConnectionFailed = errors.New("redis connection failed")

	// ErrPingFailed is returned when the Redis ping fails
	ErrPingFailed = errors.New("redis ping failed")

	// ErrBatchWriteFailed is returned when a pipelined batch write fails
	ErrBatchWriteFailed = errors.New("redis batch write failed")
)
