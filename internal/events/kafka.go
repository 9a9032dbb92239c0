package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("kafka disabled")

const publishMaxElapsed = 10 * time.Second

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher returns ErrDisabled when brokers is empty.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) (*KafkaPublisher, error) {
	addrs := make([]string, 0, len(brokers))
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, ErrDisabled
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		log: log,
	}, nil
}

// Publish writes e keyed by order id, retrying with exponential backoff.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{Key: []byte(e.OrderID), Value: data, Time: e.CreatedAt}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = publishMaxElapsed

	return backoff.RetryNotify(
		func() error { return p.writer.WriteMessages(ctx, msg) },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			p.log.Warn("kafka publish failed, retrying",
				zap.Error(err),
				zap.String("event_id", e.EventID),
				zap.Duration("next_attempt_in", next))
		},
	)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
