// Package outboxrepo persists notification messages in the same transaction
// as the state change they describe. The dispatch job drains unpublished rows
// oldest first and stamps them once the broker accepts them.
package outboxrepo

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxMessageDTO represents a queued notification row.
type OutboxMessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic       string
	Key         string
	Payload     []byte     `gorm:"type:bytea"`
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add queues a message inside the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	dto := OutboxMessageDTO{
		ID:        message.ID.Bytes(),
		Topic:     message.Topic,
		Key:       message.Key,
		Payload:   message.Payload,
		CreatedAt: message.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves up to limit queued messages, oldest first.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			Topic:       dto.Topic,
			Key:         dto.Key,
			Payload:     dto.Payload,
			CreatedAt:   dto.CreatedAt,
			PublishedAt: dto.PublishedAt,
		})
	}

	return messages, nil
}

// MarkPublished stamps a message as delivered to the broker.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("published_at", &now).Error
}
