package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"guideomra/pkg/logger"

	"github.com/IBM/sarama"
)

var ErrUnsupportedEvent = errors.New("unsupported event type")

// EventHandler reacts to one reservation event. When it still fails after the
// retries, the partition claim stops before the message is marked, so the
// group resumes from that message on the next Consume.
type EventHandler interface {
	HandleReservation(ctx context.Context, event *ReservationEvent) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	Heartbeat            time.Duration
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "guideomra-guide-notifier",
		Topics:               []string{"reservations"},
		SessionTimeout:       30 * time.Second,
		Heartbeat:            3 * time.Second,
		MaxProcessingTime:    time.Minute,
		OffsetOldest:         true,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// SaramaConfig translates the consumer settings
func (c *ConsumerConfig) SaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Consumer.Group.Session.Timeout = c.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.Heartbeat
	cfg.Consumer.MaxProcessingTime = c.MaxProcessingTime
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.AutoCommit.Enable = true
	cfg.Consumer.Offsets.AutoCommit.Interval = time.Second
	if c.OffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	return cfg
}

// ReservationConsumer feeds reservation events from a consumer group to a handler
type ReservationConsumer struct {
	group   sarama.ConsumerGroup
	config  *ConsumerConfig
	handler EventHandler
	log     *logger.Logger
	wg      sync.WaitGroup
}

func NewReservationConsumer(config *ConsumerConfig, handler EventHandler) (*ReservationConsumer, error) {
	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, config.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	return NewReservationConsumerWithGroup(group, config, handler), nil
}

// NewReservationConsumerWithGroup wraps an existing consumer group
func NewReservationConsumerWithGroup(group sarama.ConsumerGroup, config *ConsumerConfig, handler EventHandler) *ReservationConsumer {
	return &ReservationConsumer{
		group:   group,
		config:  config,
		handler: handler,
		log:     logger.GetDefault(),
	}
}

// Start runs the consume loop until ctx is cancelled
func (rc *ReservationConsumer) Start(ctx context.Context) {
	rc.wg.Add(2)
	go func() {
		defer rc.wg.Done()
		for err := range rc.group.Errors() {
			rc.log.Error("Consumer group error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		defer rc.wg.Done()
		handler := &groupHandler{consumer: rc}
		for {
			// Consume returns on every rebalance
			if err := rc.group.Consume(ctx, rc.config.Topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				rc.log.Error("Error consuming reservation events", slog.String("error", err.Error()))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	rc.log.Info("Reservation consumer started",
		slog.String("group", rc.config.GroupID),
		slog.Any("topics", rc.config.Topics),
	)
}

// Stop closes the group and waits for the loops to exit. Cancel the Start
// context first.
func (rc *ReservationConsumer) Stop() error {
	err := rc.group.Close()
	rc.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// processMessage decodes and handles one message. Malformed and foreign
// messages are skipped so they do not block the partition.
func (rc *ReservationConsumer) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event ReservationEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		rc.log.Warn("Skipping malformed reservation event",
			slog.Int64("offset", message.Offset),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if event.Type != EventTypeReservationCreated {
		rc.log.Debug("Skipping event", slog.String("type", string(event.Type)))
		return nil
	}

	return rc.executeWithRetry(ctx, &event)
}

func (rc *ReservationConsumer) executeWithRetry(ctx context.Context, event *ReservationEvent) error {
	backoff := rc.config.RetryBackoffDuration

	var err error
	for attempt := 0; attempt <= rc.config.MaxRetries; attempt++ {
		if err = rc.handler.HandleReservation(ctx, event); err == nil {
			return nil
		}
		if attempt == rc.config.MaxRetries {
			break
		}

		delay := backoff * time.Duration(1<<attempt)
		rc.log.Warn("Retrying reservation event",
			slog.String("reservation_id", event.ReservationID.String()),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("reservation %s: %w", event.ReservationID, err)
}

type groupHandler struct {
	consumer *ReservationConsumer
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks messages in order. A failed message ends the claim:
// marking anything after it would commit past it.
func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.consumer.processMessage(session.Context(), message); err != nil {
				h.consumer.log.Error("Reservation event not handled, stopping claim for redelivery",
					slog.Int("partition", int(message.Partition)),
					slog.Int64("offset", message.Offset),
					slog.String("error", err.Error()),
				)
				return fmt.Errorf("partition %d offset %d: %w", message.Partition, message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
