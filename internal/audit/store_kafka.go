package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"chaincerts/internal/platform/kafka/producer"
	"chaincerts/pkg/platform/circuit"
)

// MessageProducer is the subset of the Kafka producer the audit sink needs.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaStore appends to a queryable store and then publishes the event keyed
// by wallet id, so consumers see per-wallet order.
type KafkaStore struct {
	next     Store
	producer MessageProducer
	topic    string
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type KafkaStoreOption func(*KafkaStore)

// WithBreaker stops publish failures from surfacing once the broker has
// failed repeatedly. Events still reach the queryable store.
func WithBreaker(b *circuit.Breaker) KafkaStoreOption {
	return func(s *KafkaStore) { s.breaker = b }
}

func WithKafkaLogger(logger *slog.Logger) KafkaStoreOption {
	return func(s *KafkaStore) { s.logger = logger }
}

func NewKafkaStore(next Store, p MessageProducer, topic string, opts ...KafkaStoreOption) *KafkaStore {
	s := &KafkaStore{next: next, producer: p, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	if err := s.next.Append(ctx, event); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	err = s.producer.Produce(ctx, &producer.Message{
		Topic:   s.topic,
		Key:     []byte(event.WalletID),
		Value:   payload,
		Headers: map[string]string{"action": string(event.Action)},
	})
	if s.breaker == nil {
		return err
	}
	if err == nil {
		if s.breaker.Success() == circuit.Closed {
			s.logger.InfoContext(ctx, "audit publishing recovered", "breaker", s.breaker.Name())
		}
		return nil
	}
	open, transition := s.breaker.Failure()
	if transition == circuit.Opened {
		s.logger.WarnContext(ctx, "audit publishing degraded, events kept locally only",
			"breaker", s.breaker.Name(), "error", err)
	}
	if open {
		return nil
	}
	return err
}

func (s *KafkaStore) ListByWallet(ctx context.Context, walletID string) ([]Event, error) {
	return s.next.ListByWallet(ctx, walletID)
}
