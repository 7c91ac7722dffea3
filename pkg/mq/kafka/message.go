package kafka

import (
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// Message is one record taken from a Kafka partition.
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	Timestamp time.Time
}

func fromConsumerMessage(msg *sarama.ConsumerMessage) Message {
	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Timestamp: msg.Timestamp,
	}
}

// offsetAcker commits a message's offset on Ack. Fail leaves the offset
// unmarked so the message is redelivered after the next rebalance. Both
// are idempotent; only the first call on a handle has effect.
type offsetAcker struct {
	once    sync.Once
	session sarama.ConsumerGroupSession
	msg     *sarama.ConsumerMessage
}

func (a *offsetAcker) Ack() {
	a.once.Do(func() {
		a.session.MarkMessage(a.msg, "")
	})
}

func (a *offsetAcker) Fail() {
	a.once.Do(func() {})
}
