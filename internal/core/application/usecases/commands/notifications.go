package commands

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// Notification topics published through the outbox. Consumers (mail, push,
// webhooks) subscribe per topic.
const (
	TopicOrderPlaced    = "storefront.order.placed"
	TopicOrderPaid      = "storefront.order.paid"
	TopicOrderShipped   = "storefront.order.shipped"
	TopicOrderDelivered = "storefront.order.delivered"
	TopicPaymentFailed  = "storefront.payment.failed"
)

type orderEventPayload struct {
	OrderID     string    `json:"order_id"`
	OwnerID     string    `json:"owner_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// newOrderMessage builds an outbox message describing the order's current
// state. The order id doubles as the partition key so per-order events stay
// ordered on the broker.
func newOrderMessage(topic string, ord *order.Order) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(orderEventPayload{
		OrderID:     ord.ID().String(),
		OwnerID:     ord.OwnerID().String(),
		Status:      ord.Status().String(),
		TotalAmount: ord.TotalAmount().Amount().String(),
		Currency:    ord.TotalAmount().Currency(),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Topic:     topic,
		Key:       ord.ID().String(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}
