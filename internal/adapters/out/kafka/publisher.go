// Package kafka implements the notification publisher over a Kafka cluster.
// The outbox dispatch job is the only caller; it marks a message published
// only after the broker acknowledged it, so delivery is at-least-once.
package kafka

import (
	"context"

	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher writes outbox messages to the topic each message names.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers. Messages are keyed
// by order id so one order's events stay on one partition, in order.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish sends one message and waits for broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: message.Topic,
		Key:   []byte(message.Key),
		Value: message.Payload,
		Time:  message.CreatedAt,
	})
}

// Close flushes buffered writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
