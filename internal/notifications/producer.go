package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guideomra/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher delivers reservation events to whoever notifies guides
type Publisher interface {
	PublishReservation(ctx context.Context, event *ReservationEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka event producer
type KafkaProducerConfig struct {
	Brokers          []string
	ReservationTopic string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		ReservationTopic: "reservations",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// SaramaConfig translates the producer settings
func (c *KafkaProducerConfig) SaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = c.RequiredAcks
	cfg.Producer.Compression = c.CompressionType
	cfg.Producer.Retry.Max = c.RetryMax
	cfg.Producer.Timeout = c.Timeout
	cfg.Producer.Idempotent = c.IdempotentWrites
	cfg.Producer.MaxMessageBytes = c.MaxMessageBytes
	if c.IdempotentWrites {
		// required by sarama for idempotent producers
		cfg.Net.MaxOpenRequests = 1
		cfg.Version = sarama.V2_1_0_0
	}
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

// KafkaPublisher publishes reservation events on a sync producer
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher dials the brokers
func NewKafkaPublisher(config *KafkaProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(config.Brokers, config.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, config.ReservationTopic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: logger.GetDefault()}
}

func (p *KafkaPublisher) PublishReservation(ctx context.Context, event *ReservationEvent) error {
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Headers:   createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send reservation event to Kafka: %w", err)
	}

	p.log.DebugContext(ctx, "Reservation event published",
		slog.String("topic", p.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
		slog.String("reservation_id", event.ReservationID.String()),
	)
	return nil
}

func createHeaders(event *ReservationEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("reservation_id"), Value: []byte(event.ReservationID.String())},
		{Key: []byte("producer"), Value: []byte("guideomra-reservations")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// NoopPublisher drops events; used when Kafka is disabled
type NoopPublisher struct{}

func (NoopPublisher) PublishReservation(ctx context.Context, event *ReservationEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
