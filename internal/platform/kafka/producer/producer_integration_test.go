//go:build integration

package producer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"chaincerts/internal/platform/kafka/producer"
	"chaincerts/pkg/testutil/containers"
)

type ProducerIntegrationSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestProducerIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerIntegrationSuite))
}

func (s *ProducerIntegrationSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())

	cfg := producer.DefaultConfig()
	cfg.Brokers = s.kafka.Brokers
	cfg.DeliveryTimeout = 10 * time.Second
	prod, err := producer.New(cfg, nil)
	s.Require().NoError(err)
	s.producer = prod
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func (s *ProducerIntegrationSuite) TestProduceDeliversKeyedRecord() {
	ctx := context.Background()
	topic := "wallet-events-produce"
	s.Require().NoError(s.kafka.CreateTopic(ctx, topic, 1, 1))

	err := s.producer.Produce(ctx, &producer.Message{
		Topic:   topic,
		Key:     []byte("wallet-1"),
		Value:   []byte(`{"action":"chaincert_deposited"}`),
		Headers: map[string]string{"action": "chaincert_deposited"},
	})
	s.Require().NoError(err)

	record, err := s.kafka.ConsumeOne(ctx, topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "wallet-1"
	})
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.JSONEq(`{"action":"chaincert_deposited"}`, string(record.Value))
}

func (s *ProducerIntegrationSuite) TestProduceAfterCloseFails() {
	cfg := producer.DefaultConfig()
	cfg.Brokers = s.kafka.Brokers
	prod, err := producer.New(cfg, nil)
	s.Require().NoError(err)
	s.Require().NoError(prod.Close())

	err = prod.Produce(context.Background(), &producer.Message{Topic: "wallet-events-closed"})
	s.Error(err)
}
