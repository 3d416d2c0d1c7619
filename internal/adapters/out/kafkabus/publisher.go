// Package kafkabus publishes domain events to a Kafka topic. Events are keyed
// by scope so all events for one audience land on the same partition and stay
// ordered; the event name travels in a message header for cheap consumer-side
// filtering.
package kafkabus

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// KafkaEventPublisher implements the EventPublisher port on a kafka-go writer.
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher creates a publisher writing to the given brokers and
// topic. The writer batches internally; Close flushes pending messages.
func NewKafkaEventPublisher(brokers []string, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

var _ ports.EventPublisher = (*KafkaEventPublisher)(nil)

// Publish emits one event, keyed by its scope.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Scope),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Name)},
		},
	})
	if err != nil {
		return errs.NewUpstreamFailureError("kafka", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
