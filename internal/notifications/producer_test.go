package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"guideomra/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
)

func TestPublishReservation(t *testing.T) {
	logger.SetDefault(logger.Discard())
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())

	event := NewReservationCreated(uuid.New(), uuid.New(), uuid.New())
	event.TotalPrice = 330
	event.Currency = "SAR"

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "reservations" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != event.GuideID.String() {
			return errors.New("message not keyed by guide")
		}
		value, _ := msg.Value.Encode()
		var decoded ReservationEvent
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.ReservationID != event.ReservationID || decoded.TotalPrice != 330 {
			return errors.New("payload mismatch")
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "reservations")
	if err := pub.PublishReservation(context.Background(), event); err != nil {
		t.Fatalf("PublishReservation: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPublishReservationFailure(t *testing.T) {
	logger.SetDefault(logger.Discard())
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "reservations")
	err := pub.PublishReservation(context.Background(), NewReservationCreated(uuid.New(), uuid.New(), uuid.New()))
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("err = %v, want ErrOutOfBrokers", err)
	}
	_ = pub.Close()
}

func TestHeaders(t *testing.T) {
	event := NewReservationCreated(uuid.New(), uuid.New(), uuid.New())
	headers := createHeaders(event)
	found := map[string]string{}
	for _, h := range headers {
		found[string(h.Key)] = string(h.Value)
	}
	if found["event_type"] != string(EventTypeReservationCreated) || found["event_id"] != event.ID.String() {
		t.Fatalf("headers = %v", found)
	}
}
