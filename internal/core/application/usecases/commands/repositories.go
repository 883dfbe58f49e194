// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its transaction actually
// touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// InventoryRepoFactory provides access to the stock repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OutboxRepoFactory provides access to the notification outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CheckoutUoW manages the checkout transaction: stock, order, payment,
	// cart and outbox rows all move together or not at all.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		InventoryRepoFactory
		CartRepoFactory
		OutboxRepoFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// PaymentUoW manages settlement transactions: the payment record and its
	// order change together, with notifications queued alongside.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		OutboxRepoFactory
	}

	// PaymentUoWFactory creates payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// FulfillmentUoW manages order-only status transitions.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// FulfillmentUoWFactory creates fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// SettlementUoW manages cancellation and refund transactions, which roll
	// back reserved stock in the same transaction that flips the order and
	// payment records.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		InventoryRepoFactory
		OutboxRepoFactory
	}

	// SettlementUoWFactory creates settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
