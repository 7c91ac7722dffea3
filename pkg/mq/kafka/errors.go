package kafka

import "errors"

var (
	// ErrNoBrokers is returned when the configuration lists no brokers
	ErrNoBrokers = errors.New("kafka brokers are required")

	// ErrNoTopics is returned when the configuration lists no topics
	ErrNoTopics = errors.New("kafka topics are required")

	// ErrNilSubmitter is returned when no submitter is provided
	ErrNilSubmitter = errors.New("submitter is required")

	// ErrConnectionFailed is returned when the consumer group cannot be created
	ErrConnectionFailed = errors.New("kafka connection failed")
)
