package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers transaction events
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TransactionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

// KafkaPublisher writes events to a single Kafka topic
type KafkaPublisher struct {
	writer       *kafka.Writer
	writeTimeout time.Duration
}

// NewKafkaPublisher creates a publisher for topic on the given brokers.
// Messages are keyed by transaction id, so events of one transaction stay in order on one partition.
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: writeTimeout,
		},
		writeTimeout: writeTimeout,
	}
}

// Publish writes a single event and waits for the broker acknowledgement
func (k *KafkaPublisher) Publish(ctx context.Context, event TransactionEvent) error {
	msg, err := encodeMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, k.writeTimeout)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s event: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending writes and closes broker connections
func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

func encodeMessage(event TransactionEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	return kafka.Message{
		Key:   []byte(event.TransactionID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
