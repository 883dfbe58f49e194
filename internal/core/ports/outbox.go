package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// OutboxMessage is a notification queued in the same transaction as the
// state change it describes. A background job drains unpublished rows and
// hands them to the NotificationPublisher.
type OutboxMessage struct {
	ID          kernel.UUID
	Topic       string
	Key         string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// OutboxRepository defines the persistence contract for queued notifications.
type OutboxRepository interface {
	// Add queues a message inside the current transaction.
	Add(ctx context.Context, message OutboxMessage) error

	// GetUnpublished retrieves up to limit queued messages, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps a message as delivered to the broker.
	MarkPublished(ctx context.Context, id kernel.UUID) error
}

// NotificationPublisher delivers drained outbox messages to the message
// broker.
type NotificationPublisher interface {
	// Publish sends one message. The caller marks the outbox row published
	// only after Publish returns nil, so delivery is at-least-once.
	Publish(ctx context.Context, message OutboxMessage) error
}
