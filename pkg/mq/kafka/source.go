package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/batchline/batchline/pkg/dispatch"
	"github.com/batchline/batchline/pkg/settings"
	"github.com/batchline/batchline/pkg/utils"
)

const (
	defaultTimeout           = 10  // seconds
	defaultMaxRetries        = 3   //
	defaultRetryBackoff      = 250 // millis
	defaultMaxProcessingTime = 500 // millis
)

// Submitter receives records taken off the partitions. It is satisfied
// by dispatch.Dispatcher[Message].
type Submitter interface {
	Submit(rec dispatch.Record[Message])
}

var _ Submitter = (*dispatch.Dispatcher[Message])(nil)

// Source consumes topics as part of a consumer group and submits every
// message as a record whose acknowledgement marks the consumed offset.
type Source struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler *groupHandler
	log     *zap.Logger
}

// NewSource creates a consumer group source. A nil logger disables logging.
func NewSource(cfg *settings.Kafka, submitter Submitter, log *zap.Logger) (*Source, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if len(cfg.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if submitter == nil {
		return nil, ErrNilSubmitter
	}
	if log == nil {
		log = zap.NewNop()
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.Group, saramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &Source{
		group:   group,
		topics:  cfg.Topics,
		handler: &groupHandler{submitter: submitter, log: log},
		log:     log,
	}, nil
}

// saramaConfig builds the consumer configuration, filling defaults
func saramaConfig(cfg *settings.Kafka) *sarama.Config {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff == 0 {
		retryBackoff = defaultRetryBackoff
	}
	maxProcessing := cfg.MaxProcessingTime
	if maxProcessing == 0 {
		maxProcessing = defaultMaxProcessingTime
	}

	c := sarama.NewConfig()
	c.Net.DialTimeout = utils.ToDuration(timeout)
	c.Metadata.Retry.Max = maxRetries
	c.Metadata.Retry.Backoff = utils.ToDurationMs(retryBackoff)
	c.Consumer.MaxProcessingTime = utils.ToDurationMs(maxProcessing)
	c.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRange(),
	}
	if cfg.InitialOffset == "oldest" {
		c.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		c.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	return c
}

// Run consumes until the context is cancelled. Consume returns on every
// rebalance, so it is called in a loop with the same handler.
func (s *Source) Run(ctx context.Context) error {
	for {
		if err := s.group.Consume(ctx, s.topics, s.handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Debug("consumer group rebalanced", zap.Strings("topics", s.topics))
	}
}

// Close tears down the consumer group
func (s *Source) Close() error {
	return s.group.Close()
}

// groupHandler bridges partition claims to the submitter
type groupHandler struct {
	submitter Submitter
	log       *zap.Logger
}

var _ sarama.ConsumerGroupHandler = (*groupHandler)(nil)

func (h *groupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.log.Info("consumer group session started",
		zap.String("member_id", session.MemberID()),
		zap.Int32("generation", session.GenerationID()))
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			rec := dispatch.NewRecord(fromConsumerMessage(msg), &offsetAcker{
				session: session,
				msg:     msg,
			})
			h.submitter.Submit(rec)
		case <-session.Context().Done():
			return nil
		}
	}
}
